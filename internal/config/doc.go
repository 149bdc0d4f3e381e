// Package config loads, normalizes, and validates wadcat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts) and reads TOML files. The defaults reproduce the bare
// converter: read hashes.csv, write <code>.json into the working directory,
// split headers on the "# " marker. Relative paths are kept relative so
// progress output names files the way the operator typed them.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log settings, and clear validation errors.
package config
