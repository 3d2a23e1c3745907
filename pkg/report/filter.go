package report

// PathMatcher decides whether a report's file path identifies a false
// positive. Satisfied by [github.com/sievekit/sieve/pkg/rule.Set].
type PathMatcher interface {
	Matches(path string) bool
}

// Stats summarizes one filtering pass.
type Stats struct {
	Packages int // Packages visited.
	Kept     int // Reports that survived.
	Removed  int // Reports pruned as false positives.
}

// Filter prunes, in place, every report whose file path hits the matcher,
// and resets each package's count to the surviving report total. Package
// order and the relative order of surviving reports are preserved. A
// document without a "data" key is left untouched.
func Filter(doc *Document, m PathMatcher) Stats {
	var stats Stats

	if doc == nil || !doc.HasData {
		return stats
	}

	for _, pkg := range doc.Packages {
		if pkg == nil {
			continue
		}

		kept := make([]*Report, 0, len(pkg.Reports))
		for _, r := range pkg.Reports {
			if r == nil || m.Matches(r.File) {
				stats.Removed++

				continue
			}

			kept = append(kept, r)
		}

		pkg.Reports = kept
		pkg.Count = len(kept)

		stats.Packages++
		stats.Kept += len(kept)
	}

	return stats
}
