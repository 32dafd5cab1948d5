// Package config loads, normalizes, and validates bulkscrape configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STASH_URL and STASH_API_KEY. Recoverable problems, like a scrape delay that
// does not parse as a number, are collected in Config.Warnings instead of
// failing the load so the caller can log them once a logger exists.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
