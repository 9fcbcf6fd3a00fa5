// Package source turns resolved GitHub references and local folders into
// code variants.
//
// The pipeline is: filter a recursive tree listing down to recognized UI
// source files (filter.go), group the survivors into per-folder variants
// and fetch their contents under file caps (group.go), or expand a pull
// request into exactly one variant per side (pr.go). Local folders take
// the same filter and caps without the network round trips (local.go).
//
// Content fetches within one group run concurrently with a bounded
// fan-out and are joined before the next group starts, so the running
// total-file cap needs no synchronization. A failed fetch for one file
// drops that file only; a group with zero fetched files produces no
// variant.
package source
