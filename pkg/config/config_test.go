package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()

	assert.Equal(t, "sievekit.dev/v1beta1", c.APIVersion)
	assert.Equal(t, "Configuration", c.Kind)
	assert.Equal(t, config.DefaultRulesPath, c.Rules.Path)
	assert.Equal(t, config.DefaultInputPath, c.Input.Path)
	assert.Equal(t, config.DefaultOutputPath, c.Output.Path)
}

func TestEnsureDefaults_PartialConfig(t *testing.T) {
	t.Parallel()

	c := &config.Config{
		Rules: &config.RulesConfig{Path: "my_rules.txt"},
	}
	c.EnsureDefaults()

	assert.Equal(t, "my_rules.txt", c.Rules.Path)
	assert.Equal(t, config.DefaultInputPath, c.Input.Path)
	assert.Equal(t, config.DefaultOutputPath, c.Output.Path)
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	c.Rules.Extra = []string{"tokio"}

	b, err := c.MarshalYAML()
	require.NoError(t, err)

	cl := config.NewConfigLoaderFromBytes(b)
	require.NoError(t, cl.Validate())

	got, err := cl.Load()
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	t.Run("writes default config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sieve", "config.yaml")

		require.NoError(t, config.WriteDefaultConfig(path, false))

		cl, err := config.NewConfigLoaderFromFile(path)
		require.NoError(t, err)
		require.NoError(t, cl.Validate())

		c, err := cl.Load()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultRulesPath, c.Rules.Path)
	})

	t.Run("keeps existing config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o600))

		require.NoError(t, config.WriteDefaultConfig(path, false))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# mine\n", string(b))
	})

	t.Run("directory path is an error", func(t *testing.T) {
		t.Parallel()

		require.Error(t, config.WriteDefaultConfig(t.TempDir(), false))
	})
}
