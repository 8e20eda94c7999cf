package schema

import (
	"sort"

	ensurejson "github.com/josharsh/ensureJson"
	"github.com/josharsh/ensureJson/i18n"
)

// UnknownPolicy controls how keys absent from the builder are handled.
type UnknownPolicy int

const (
	// UnknownStrip drops unknown keys. This is the default, matching the
	// lax posture expected of LLM output.
	UnknownStrip UnknownPolicy = iota
	// UnknownStrict rejects unknown keys with an unknown_key issue.
	UnknownStrict
)

type fieldSpec struct {
	adapter  AnyAdapter
	required bool
	nullable bool
	def      any
	hasDef   bool
}

type objectBuilder struct {
	fields        map[string]*fieldSpec
	unknownPolicy UnknownPolicy
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are stripped unless
// UnknownStrict is requested.
func Object() *objectBuilder {
	return &objectBuilder{fields: map[string]*fieldSpec{}}
}

// Field registers a field with its adapter.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	b.fields[name] = &fieldSpec{adapter: ad}
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.fields[f.name].required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	f.b.fields[f.name].required = false
	return f.b
}

// Nullable lets an explicit JSON null pass through as a nil value instead of
// being handed to the field schema.
func (f *fieldStep) Nullable() *fieldStep {
	f.b.fields[f.name].nullable = true
	return f
}

// Default sets the value substituted when the field is absent.
func (f *fieldStep) Default(v any) *objectBuilder {
	spec := f.b.fields[f.name]
	spec.def = v
	spec.hasDef = true
	return f.b
}

// Chaining helpers so a fieldStep reads like the builder itself.
func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep { return f.b.Field(name, ad) }
func (f *fieldStep) Require(names ...string) *objectBuilder      { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *objectBuilder               { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder                { return f.b.UnknownStrip() }

func (f *fieldStep) Build() (ensurejson.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() ensurejson.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		if spec, ok := b.fields[n]; ok {
			spec.required = true
		}
	}
	return b
}

// UnknownStrict sets the unknown-key policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = UnknownStrict
	return b
}

// UnknownStrip sets the unknown-key policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = UnknownStrip
	return b
}

// Build returns the object schema.
func (b *objectBuilder) Build() (ensurejson.Schema[map[string]any], error) {
	// cache sorted keys for deterministic issue order without per-parse sorting
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &objectSchema{fields: b.fields, unknownPolicy: b.unknownPolicy, sortedKeys: keys}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() ensurejson.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchema struct {
	fields        map[string]*fieldSpec
	unknownPolicy UnknownPolicy
	sortedKeys    []string
}

// Parse validates every declared field and the unknown-key policy,
// collecting all issues before reporting. On success it returns the coerced
// field values keyed by field name.
func (s *objectSchema) Parse(v ensurejson.Value) (map[string]any, error) {
	if v.Kind() != ensurejson.KindObject {
		return nil, issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "object", "got": v.Kind().String()})
	}

	var iss ensurejson.Issues
	out := make(map[string]any, len(s.fields))

	for _, name := range s.sortedKeys {
		spec := s.fields[name]
		fv, present := v.Get(name)
		if !present {
			switch {
			case spec.hasDef:
				out[name] = spec.def
			case spec.required:
				iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/" + escapeToken(name), Code: ensurejson.CodeRequired, Message: i18n.T(ensurejson.CodeRequired, nil)})
			}
			continue
		}
		if fv.IsNull() && spec.nullable {
			out[name] = nil
			continue
		}
		val, err := spec.adapter.parse(fv)
		if err != nil {
			iss = ensurejson.AppendIssues(iss, rebase("/"+escapeToken(name), err)...)
			continue
		}
		out[name] = val
	}

	if s.unknownPolicy == UnknownStrict {
		for _, key := range v.Keys() {
			if _, ok := s.fields[key]; !ok {
				iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/" + escapeToken(key), Code: ensurejson.CodeUnknownKey, Message: i18n.T(ensurejson.CodeUnknownKey, nil)})
			}
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
