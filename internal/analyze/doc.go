// Package analyze contains the core types and engine for LLM-based A/B
// comparison of UI variants.
//
// It shapes the multimodal request (payload.go): a fixed instruction
// demanding a strict JSON verdict, an enumeration of every variant, image
// blocks for screenshot variants, and the full source text of code
// variants under per-file delimiters. The response path (interpret.go)
// strips markdown fences, parses the JSON verdict, and tolerates absent
// optional fields.
//
// Criteria packs (criteria.go) let callers steer the comparison with a
// target audience, extra judging dimensions, and brand notes.
//
// Malformed model output is surfaced verbatim as MalformedAnalysisError;
// the engine never retries or repairs, since model output is
// non-deterministic and a silent retry would hide the cause.
package analyze
