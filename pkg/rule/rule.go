package rule

import (
	"regexp"
	"strings"
)

// Rule is one raw exclusion rule line, whitespace-stripped.
type Rule struct {
	// Raw is the rule text as it appeared in the rule source.
	Raw string `json:"raw"`
}

// Matcher is the compiled form of one [Rule], or of a built-in exclusion.
// It is immutable after construction.
type Matcher struct {
	re      *regexp.Regexp
	pattern string
}

// Compile builds a [Matcher] from a single rule.
//
// Plain rules (no slash) become substring patterns. Crate-qualified rules are
// split at the first slash into "crate-version" and subpath; the crate name is
// everything before the first dash, and the version is matched as any run of
// non-slash characters. Compilation is total: every non-blank line yields a
// matcher, there is no invalid-rule condition.
func Compile(r Rule) *Matcher {
	line := strings.TrimSpace(r.Raw)

	var pattern string
	if crateWithVersion, subpath, ok := strings.Cut(line, "/"); ok {
		// Note: crate names containing dashes are truncated at the first
		// dash ("my-crate-1.0.0" yields crate name "my"). Intentional,
		// pinned by tests; do not "fix" without migrating rule files.
		crateName, _, _ := strings.Cut(crateWithVersion, "-")
		pattern = regexp.QuoteMeta(crateName) + `-[^/]+/` + regexp.QuoteMeta(subpath)
	} else {
		pattern = regexp.QuoteMeta(line)
	}

	return mustMatcher(pattern)
}

// CompileAll compiles rules in order. Blank rules are skipped.
func CompileAll(rules []Rule) []*Matcher {
	matchers := make([]*Matcher, 0, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(r.Raw) == "" {
			continue
		}

		matchers = append(matchers, Compile(r))
	}

	return matchers
}

// newLiteral builds a matcher for an exact text fragment, bypassing rule
// classification. Used for built-ins that contain slashes but are not
// crate-qualified.
func newLiteral(text string) *Matcher {
	return mustMatcher(regexp.QuoteMeta(text))
}

func mustMatcher(pattern string) *Matcher {
	// Patterns are assembled from QuoteMeta output plus fixed structural
	// syntax, so compilation cannot fail.
	return &Matcher{
		re:      regexp.MustCompile(pattern),
		pattern: pattern,
	}
}

// Matches reports whether the pattern occurs anywhere in path. This is a
// search, not an anchored match: a rule for "tokio" hits
// "/root/tokio-1.0.0/src/lib.rs".
func (m *Matcher) Matches(path string) bool {
	return m.re.MatchString(path)
}

// Pattern returns the compiled pattern string, as surfaced in diagnostics.
func (m *Matcher) Pattern() string {
	return m.pattern
}

func (m *Matcher) String() string {
	return m.pattern
}
