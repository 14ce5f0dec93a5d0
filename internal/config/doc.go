// Package config loads, parses, and validates application settings from
// environment variables and an optional config file, giving the rest of the
// application type-safe access to its configuration without knowing where a
// value came from.
package config
