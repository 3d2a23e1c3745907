package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/pkg/config"
)

func TestConfigLoader_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid config",
			data: `
apiVersion: sievekit.dev/v1beta1
kind: Configuration
rules:
  path: filter_out.txt
  extra:
    - tokio
`,
			wantErr: false,
		},
		{
			name: "unknown apiVersion",
			data: `
apiVersion: sievekit.dev/v1alpha1
kind: Configuration
`,
			wantErr: true,
		},
		{
			name: "unknown field",
			data: `
apiVersion: sievekit.dev/v1beta1
kind: Configuration
rulez:
  path: filter_out.txt
`,
			wantErr: true,
		},
		{
			name: "missing kind",
			data: `
apiVersion: sievekit.dev/v1beta1
`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			data:    "{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cl := config.NewConfigLoaderFromBytes([]byte(tt.data))

			err := cl.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigLoader_Load(t *testing.T) {
	t.Parallel()

	cl := config.NewConfigLoaderFromBytes([]byte(`
apiVersion: sievekit.dev/v1beta1
kind: Configuration
rules:
  path: custom.txt
output:
  path: out.json
`))

	c, err := cl.Load()

	require.NoError(t, err)
	assert.Equal(t, "custom.txt", c.Rules.Path)
	assert.Equal(t, "out.json", c.Output.Path)
	// Unset sections pick up defaults.
	assert.Equal(t, config.DefaultInputPath, c.Input.Path)
}

func TestNewConfigLoaderFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.NewConfigLoaderFromFile(t.TempDir() + "/missing.yaml")

	require.Error(t, err)
}
