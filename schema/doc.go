// Package schema provides a builder DSL for validating and coercing parsed
// JSON values into typed Go results.
//
// Overview
//   - Builder API: declare object semantics (required/default/unknown keys)
//     with Object()/Field()/Required()/MustBuild().
//   - Typed binding: project an object schema onto a struct T with
//     Bind[T]/MustBind[T], resolving fields by json tag.
//   - Primitives/Array: String()/Int()/Float()/Bool() with constraint chains
//     (MinLen/Min/Max/Gt/Pattern/Email), Array(elem) with MinItems/MaxItems.
//   - Of[T]: adapt any ensurejson.Schema[T] to an AnyAdapter for embedding
//     into builders.
//   - Descriptors: FromYAML imports a YAML schema descriptor into a built
//     object schema (used by the CLI's --schema flag).
//
// Coercion follows the source material's lax rules: numeric strings convert
// to numbers, "true"/"false" strings to booleans. Validation is exhaustive:
// every offending field contributes one Issue with a JSON Pointer path, and
// the caller receives them all at once rather than failing on the first.
//
// Example:
//
//	user := schema.MustBind[User](schema.Object().
//	    Field("name", schema.Of[string](schema.String().MinLen(1))).Required().
//	    Field("age", schema.Of[int64](schema.Int().Min(0).Max(150))).Required().
//	    Field("hobbies", schema.Of[[]any](schema.Array(schema.Of[string](schema.String())))))
//
//	u, err := ensurejson.ParseAs[User](raw, user)
package schema
