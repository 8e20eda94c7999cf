// Package ensurejson repairs and parses the almost-JSON that large language
// models emit: payloads wrapped in markdown fences or prose, single-quoted
// strings, unquoted keys, trailing commas, comments, and truncated
// structures.
//
//   - Extraction picks candidate payloads out of free-form text in priority
//     order (fenced block, first balanced-brace region, whole trimmed input).
//   - An ordered set of idempotent repair passes normalizes a candidate into
//     strictly valid JSON; each pass can be disabled via Options.
//   - A strict structural parser produces a Value tree (ordered objects,
//     precision-preserving numbers); it contains no repair logic of its own.
//   - On failure the coordinator escalates to the next candidate, with one
//     bounded re-balancing retry per candidate.
//   - The schema package optionally validates and coerces a Value into a
//     caller type, collecting every offending field path as Issues.
//
// Design policy:
//   - Keep only public APIs in the root package; put extraction and repair
//     under internal/.
//   - Place the schema DSL under schema/, and the CLI under cmd/ensurejson.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := ensurejson.Parse("```json\n{name: 'Alice', age: 30,}\n```")
//
//	user, err := ensurejson.ParseAs[User](raw, userSchema)
//
// Calls are pure and synchronous; no state is shared across invocations, so
// the package is safe for concurrent use without coordination.
package ensurejson
