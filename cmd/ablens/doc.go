// Ablens is a CLI for comparative A/B analysis of UI variants with LLM
// providers.
//
// It assembles variants from screenshots, GitHub repositories, branches,
// pull requests, and local folders, sends them to a vision-capable model,
// and prints a structured verdict: per-variant scores, a winner with
// reasoning, head-to-head dimensions, and suggested improvements.
//
// Usage:
//
//	ablens analyze --image a.png --image b.png
//	ablens analyze --github https://github.com/acme/shop/tree/main/designs
//	ablens analyze --github https://github.com/acme/shop/pull/42
//	ablens fetch --github https://github.com/acme/shop   # inspect without analyzing
//	ablens models list                                   # vision-capable models
//
// See https://github.com/ablens/ablens for full documentation.
package main
