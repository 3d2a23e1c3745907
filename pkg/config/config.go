package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"

	_ "embed"
)

//go:generate go run ../../internal/schemagen/main.go -o config.v1beta1.json

const (
	// DefaultRulesPath is the conventional rule-file name, read from the
	// working directory when no other path is configured.
	DefaultRulesPath = "filter_out.txt"

	// DefaultInputPath is the analysis result filtered when no positional
	// argument is given.
	DefaultInputPath = "paritytech/polkadot-sdk/All-Targets.json"

	// DefaultOutputPath receives the filtered result.
	DefaultOutputPath = "filtered_output.json"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	// ValidAPIVersions contains the accepted apiVersion values.
	ValidAPIVersions = []string{
		"sievekit.dev/v1beta1",
	}

	// ValidKinds contains the accepted kind values.
	ValidKinds = []string{
		"Configuration",
	}
)

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Rules  *RulesConfig  `json:"rules,omitempty"  jsonschema:"title=Rule Source"`
	Input  *InputConfig  `json:"input,omitempty"  jsonschema:"title=Analysis Input"`
	Output *OutputConfig `json:"output,omitempty" jsonschema:"title=Filtered Output"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// RulesConfig locates the exclusion rules.
type RulesConfig struct {
	// Path is the rule file, one rule per line.
	Path string `json:"path,omitempty" jsonschema:"title=Rule File Path"`
	// Extra holds inline rules appended after the file rules, before the
	// built-ins.
	Extra []string `json:"extra,omitempty" jsonschema:"title=Extra Rules"`
}

// InputConfig locates the analysis result to filter.
type InputConfig struct {
	// Path is the JSON analysis result, "-" for stdin.
	Path string `json:"path,omitempty" jsonschema:"title=Input Path"`
}

// OutputConfig locates the filtered result.
type OutputConfig struct {
	// Path receives the filtered JSON, "-" for stdout.
	Path string `json:"path,omitempty" jsonschema:"title=Output Path"`
}

// NewConfig creates a new [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		APIVersion: ValidAPIVersions[0],
		Kind:       ValidKinds[0],
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil or empty fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.Rules.Path == "" {
		c.Rules.Path = DefaultRulesPath
	}

	if c.Input == nil {
		c.Input = &InputConfig{}
	}
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	apiVersion, ok := jss.Properties.Get("apiVersion")
	if !ok {
		panic("apiVersion property not found in schema")
	}

	for _, version := range ValidAPIVersions {
		apiVersion.OneOf = append(apiVersion.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: version,
			Title: "API Version",
		})
	}

	_, _ = jss.Properties.Set("apiVersion", apiVersion)

	kind, ok := jss.Properties.Get("kind")
	if !ok {
		panic("kind property not found in schema")
	}

	for _, kindValue := range ValidKinds {
		kind.OneOf = append(kind.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: kindValue,
			Title: "Kind",
		})
	}

	_, _ = jss.Properties.Set("kind", kind)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b, yaml.Indent(2))
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// GetPath returns the conventional config file location.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "sieve", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "sieve", "config.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "sieve", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
	)

	return tmpConfig
}

// WriteDefaultConfig writes the embedded default config.yaml to path. An
// existing regular file is left alone unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		switch {
		case err == nil && pathInfo.Mode().IsRegular():
			if !force {
				return nil // Config already exists.
			}

		case pathInfo.IsDir():
			return fmt.Errorf("%s: path is a directory", path)

		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if err := os.WriteFile(path, defaultConfigYAML, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

func readConfig(path string) ([]byte, error) {
	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		if err == nil && pathInfo.IsDir() {
			return nil, fmt.Errorf("%s: path is a directory", path)
		}
		if err == nil && !pathInfo.Mode().IsRegular() {
			return nil, fmt.Errorf("%s: unknown file state", path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
