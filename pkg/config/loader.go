package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ConfigValidator validates decoded configuration data.
type ConfigValidator interface {
	Validate(data any) error
}

// ConfigLoader validates and loads configuration data.
type ConfigLoader struct {
	cv   ConfigValidator
	data []byte
}

type ConfigLoaderOpt func(*ConfigLoader)

// WithConfigValidator sets a custom validator.
func WithConfigValidator(cv ConfigValidator) ConfigLoaderOpt {
	return func(cl *ConfigLoader) {
		cl.cv = cv
	}
}

func NewConfigLoaderFromBytes(data []byte, opts ...ConfigLoaderOpt) *ConfigLoader {
	cl := &ConfigLoader{
		cv:   DefaultValidator,
		data: data,
	}
	for _, opt := range opts {
		opt(cl)
	}

	return cl
}

func NewConfigLoaderFromFile(path string, opts ...ConfigLoaderOpt) (*ConfigLoader, error) {
	data, err := readConfig(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return NewConfigLoaderFromBytes(data, opts...), nil
}

// Validate validates configuration data with [ConfigValidator] without
// loading it into a [Config] struct.
func (cl *ConfigLoader) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(cl.data))
	if err := dec.Decode(&anyConfig); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if err := cl.cv.Validate(anyConfig); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Load parses the configuration and fills in defaults.
func (cl *ConfigLoader) Load() (*Config, error) {
	c := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(cl.data))
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	c.EnsureDefaults()

	return c, nil
}
