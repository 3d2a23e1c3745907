// Package rule compiles false-positive exclusion rules into path matchers.
//
// A rule file holds one rule per line. A line without a slash is a plain
// fragment, matched as a substring of the report's file path. A line with a
// slash is a crate-qualified rule: the part before the first slash names a
// crate (with its version), the rest is a subpath inside that crate. The
// compiled matcher accepts any version of the crate, so a single rule covers
// rebuilds against newer dependencies.
package rule
