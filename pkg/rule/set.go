package rule

// Built-in exclusions, appended after user rules on every compile. These
// cover output that is noise regardless of configuration: the placeholder
// lockbud emits for diagnostics it cannot display, and findings inside the
// Rust standard library sources.
var builtins = []string{
	"[lockbud] Not supported to display yet.",
	"rustlib/src/rust/library",
}

// Set is the full ordered matcher collection used in one filtering pass:
// user rules in source order, then the built-ins. Matching is a pure OR
// across the set, but the order is preserved for diagnostic output.
type Set struct {
	matchers []*Matcher
}

// NewSet compiles rules and appends the built-in matchers. An empty rule
// slice yields a set holding exactly the built-ins.
func NewSet(rules []Rule) *Set {
	matchers := CompileAll(rules)
	for _, text := range builtins {
		matchers = append(matchers, newLiteral(text))
	}

	return &Set{matchers: matchers}
}

// Matches reports whether any matcher in the set hits path.
func (s *Set) Matches(path string) bool {
	for _, m := range s.matchers {
		if m.Matches(path) {
			return true
		}
	}

	return false
}

// Matchers returns the compiled matchers in set order.
func (s *Set) Matchers() []*Matcher {
	return s.matchers
}

// Len returns the number of matchers in the set, built-ins included.
func (s *Set) Len() int {
	return len(s.matchers)
}
