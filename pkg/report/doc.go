// Package report models the analysis-result document emitted by the static
// checkers and prunes false positives from it.
//
// The document is JSON with a top-level "data" array of packages, each
// carrying "raw_reports" and a "count". Everything else in the document is
// opaque payload: it is captured on decode and written back untouched, so
// filtering only ever changes raw_reports and count.
package report
