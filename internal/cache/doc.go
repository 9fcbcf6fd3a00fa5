// Package cache provides a file-based cache for model analysis responses.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and the
// flattened request content (variant text and image data included), so two
// analyses of the same variant set with the same model resolve to the same
// entry. Each entry stores the raw model response string with a creation
// timestamp and a TTL in seconds; expired entries are treated as misses and
// removed on read.
//
// The default cache directory is $XDG_CACHE_HOME/ablens or the
// OS-appropriate equivalent.
package cache
