// Package config handles configuration loading, parsing, and validation
// from environment variables, a local .env file and an optional config.yaml.
// The result is a single Config value built once at process start and passed
// explicitly to the components that need it.
package config
