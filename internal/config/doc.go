// Package config loads, normalizes, and validates sweeper configuration.
//
// Configuration is an optional TOML file (default ~/.config/sweeper/config.toml)
// layered over repository defaults; command-line flags override both. All path
// fields are tilde-expanded during normalization.
package config
