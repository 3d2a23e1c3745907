package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/pkg/report"
	"github.com/sievekit/sieve/pkg/rule"
)

func mustDecode(t *testing.T, src string) *report.Document {
	t.Helper()

	doc, err := report.Decode(strings.NewReader(src))
	require.NoError(t, err)

	return doc
}

func mustSet(t *testing.T, src string) *rule.Set {
	t.Helper()

	rules, err := rule.ParseString(src)
	require.NoError(t, err)

	return rule.NewSet(rules)
}

func TestFilter_MixedSurvival(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{
				"count": 2,
				"raw_reports": [
					{"file": "tokio-1.0.0/src/lib.rs"},
					{"file": "serde-1.0.0/src/lib.rs"}
				]
			}
		]
	}`)

	stats := report.Filter(doc, mustSet(t, "tokio\n"))

	assert.Equal(t, report.Stats{Packages: 1, Kept: 1, Removed: 1}, stats)

	pkg := doc.Packages[0]
	require.Len(t, pkg.Reports, 1)
	assert.Equal(t, "serde-1.0.0/src/lib.rs", pkg.Reports[0].File)
	assert.Equal(t, 1, pkg.Count)
}

// With zero user rules the built-ins still apply.
func TestFilter_BuiltinsOnly(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{
				"count": 2,
				"raw_reports": [
					{"file": "[lockbud] Not supported to display yet."},
					{"file": "rustlib/src/rust/library/foo.rs"}
				]
			}
		]
	}`)

	stats := report.Filter(doc, rule.NewSet(nil))

	assert.Equal(t, report.Stats{Packages: 1, Kept: 0, Removed: 2}, stats)
	assert.Empty(t, doc.Packages[0].Reports)
	assert.Equal(t, 0, doc.Packages[0].Count)

	buf := &bytes.Buffer{}
	require.NoError(t, doc.Encode(buf))
	assert.JSONEq(t, `{"data": [{"raw_reports": [], "count": 0}]}`, buf.String())
}

func TestFilter_NoDataKey(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{"meta": "x"}`)

	stats := report.Filter(doc, rule.NewSet(nil))

	assert.Equal(t, report.Stats{}, stats)

	buf := &bytes.Buffer{}
	require.NoError(t, doc.Encode(buf))
	assert.JSONEq(t, `{"meta": "x"}`, buf.String())
}

// Count is derived after filtering, whatever the input claimed.
func TestFilter_CountInvariant(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{"count": 999, "raw_reports": [{"file": "a.rs"}, {"file": "b.rs"}]},
			{"count": -1},
			{"raw_reports": [{"file": "c.rs"}]}
		]
	}`)

	report.Filter(doc, rule.NewSet(nil))

	for _, pkg := range doc.Packages {
		assert.Equal(t, len(pkg.Reports), pkg.Count)
	}
}

func TestFilter_OrderPreserved(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{"count": 4, "raw_reports": [
				{"file": "a.rs"},
				{"file": "tokio-1.0.0/x.rs"},
				{"file": "b.rs"},
				{"file": "c.rs"}
			]},
			{"count": 1, "raw_reports": [{"file": "d.rs"}]}
		]
	}`)

	report.Filter(doc, mustSet(t, "tokio\n"))

	require.Len(t, doc.Packages, 2)

	var files []string
	for _, r := range doc.Packages[0].Reports {
		files = append(files, r.File)
	}

	assert.Equal(t, []string{"a.rs", "b.rs", "c.rs"}, files)
	assert.Equal(t, "d.rs", doc.Packages[1].Reports[0].File)
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{"count": 3, "raw_reports": [
				{"file": "tokio-1.0.0/src/lib.rs"},
				{"file": "serde-1.0.0/src/lib.rs"},
				{"file": "rustlib/src/rust/library/foo.rs"}
			]}
		]
	}`)

	set := mustSet(t, "tokio\n")

	report.Filter(doc, set)

	first := &bytes.Buffer{}
	require.NoError(t, doc.Encode(first))

	stats := report.Filter(doc, set)

	second := &bytes.Buffer{}
	require.NoError(t, doc.Encode(second))

	assert.Zero(t, stats.Removed)
	assert.Equal(t, first.String(), second.String())
}

func TestFilter_MissingFileMatchesAsEmpty(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `{
		"data": [
			{"count": 1, "raw_reports": [{"diagnostic": "no file attribute"}]}
		]
	}`)

	// No matcher hits the empty string, so the report survives.
	stats := report.Filter(doc, mustSet(t, "tokio\n"))

	assert.Equal(t, report.Stats{Packages: 1, Kept: 1}, stats)
	assert.Equal(t, 1, doc.Packages[0].Count)
}

func TestFilter_NilDocument(t *testing.T) {
	t.Parallel()

	assert.Equal(t, report.Stats{}, report.Filter(nil, rule.NewSet(nil)))
}
