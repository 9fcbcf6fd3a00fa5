// Package config loads and merges ablens configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (ABLENS_PROVIDER, ABLENS_MODEL, ABLENS_FORMAT,
//     and the fetch-cap variables)
//  3. Config file ($XDG_CONFIG_HOME/ablens/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to persist one, and
// [SetField] to update a single key.
package config
