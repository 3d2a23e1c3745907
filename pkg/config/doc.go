// Package config defines the sieve configuration file: where rules live,
// where the analysis result is read from, and where filtered output goes.
// The file is YAML with an apiVersion/kind envelope and is validated against
// an embedded JSON schema before use.
package config
