// Package config handles configuration management for dotbrew.
// Values are layered from the embedded defaults, an optional user file
// (TOML or YAML), DOTBREW_* environment variables and explicit overrides.
package config
