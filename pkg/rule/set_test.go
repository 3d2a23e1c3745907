package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/pkg/rule"
)

func TestNewSet_BuiltinsAlwaysPresent(t *testing.T) {
	t.Parallel()

	s := rule.NewSet(nil)

	require.Equal(t, 2, s.Len())
	assert.True(t, s.Matches("[lockbud] Not supported to display yet."))
	assert.True(t, s.Matches("rustlib/src/rust/library/foo.rs"))
	assert.False(t, s.Matches("src/main.rs"))
}

func TestNewSet_Order(t *testing.T) {
	t.Parallel()

	rules, err := rule.ParseString("tokio\nserde-1.0.0/src/de.rs\n")
	require.NoError(t, err)

	s := rule.NewSet(rules)

	patterns := make([]string, 0, s.Len())
	for _, m := range s.Matchers() {
		patterns = append(patterns, m.Pattern())
	}

	// User rules in file order, then the built-ins.
	assert.Equal(t, []string{
		"tokio",
		`serde-[^/]+/src/de\.rs`,
		`\[lockbud\] Not supported to display yet\.`,
		"rustlib/src/rust/library",
	}, patterns)
}

func TestSet_Matches(t *testing.T) {
	t.Parallel()

	rules, err := rule.ParseString("tokio\n")
	require.NoError(t, err)

	s := rule.NewSet(rules)

	assert.True(t, s.Matches("tokio-1.0.0/src/lib.rs"))
	assert.False(t, s.Matches("serde-1.0.0/src/lib.rs"))
}
