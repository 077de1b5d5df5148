// Package config loads, normalizes, and validates lingoreel configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and fills credentials from the environment,
// an optional .env file, or key files in the key directory. The Config type
// centralizes every knob the render pipeline and CLI need so timing, speech,
// image search, and video settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
