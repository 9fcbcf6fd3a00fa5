// Package variant defines the central Variant entity and the
// session-scoped collection that holds it.
//
// A Variant is one candidate UI design submitted for comparison: either a
// single encoded image or an ordered set of source files. Variants are
// immutable after creation; the only collection mutations are append,
// remove, and reset. Display names ("Variant A", "Variant B", ...) are
// assigned from the collection size at insertion time and are never
// reassigned, so removing a variant does not renumber the ones already
// shown.
//
// Producers for the two non-GitHub origins live here as well: image file
// uploads and local folder scans.
package variant
