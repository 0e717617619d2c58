// Package config loads, normalizes, and validates adscribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ADSCRIBE_NTFY_TOPIC. The Config type centralizes every knob the daemon
// and CLI need: staging/report directories, ads library scan settings,
// transcription and analysis tuning, and workflow intervals.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
