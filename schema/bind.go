package schema

import (
	"reflect"
	"strings"

	ensurejson "github.com/josharsh/ensureJson"
)

// Bind builds the object schema and binds it to struct type T. Field values
// are resolved through the struct's json tags (falling back to the Go field
// name). Nested struct fields should use Of with a nested bound schema so
// the value arriving here already has the right type.
func Bind[T any](b *objectBuilder) (ensurejson.Schema[T], error) {
	s, err := b.Build()
	if err != nil {
		var zero ensurejson.Schema[T]
		return zero, err
	}
	os, ok := s.(*objectSchema)
	if !ok {
		var zero ensurejson.Schema[T]
		return zero, ensurejson.Issues{{Path: "/", Code: ensurejson.CodeParseError, Message: "unexpected schema type for Bind"}}
	}
	return newTypedObjectSchema[T](os)
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *objectBuilder) ensurejson.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema adapts an objectSchema to a typed struct T by key
// resolution.
type typedObjectSchema[T any] struct {
	inner      *objectSchema
	t          reflect.Type
	fieldByKey map[string]int // schema key -> struct field index
}

func newTypedObjectSchema[T any](os *objectSchema) (ensurejson.Schema[T], error) {
	var zero ensurejson.Schema[T]
	var t T
	rt := reflect.TypeOf(t)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return zero, ensurejson.Issues{{Path: "/", Code: ensurejson.CodeParseError, Message: "Bind[T] requires struct T"}}
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := structKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	fm := make(map[string]int)
	for k := range os.fields {
		if i, ok := idxByName[k]; ok {
			fm[k] = i
		}
	}
	return &typedObjectSchema[T]{inner: os, t: rt, fieldByKey: fm}, nil
}

// structKey resolves the schema key for a struct field: the json tag name
// when present, the field name otherwise.
func structKey(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

// Parse validates through the inner object schema, then projects the result
// onto struct fields.
func (s *typedObjectSchema[T]) Parse(v ensurejson.Value) (T, error) {
	var zero T
	m, err := s.inner.Parse(v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.t).Elem()
	for key, idx := range s.fieldByKey {
		val, ok := m[key]
		if !ok {
			continue
		}
		fv := rv.Field(idx)
		if !fv.CanSet() {
			continue
		}
		if val == nil {
			switch fv.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		assign(fv, reflect.ValueOf(val))
	}
	out, ok := rv.Interface().(T)
	if !ok {
		// T is a pointer type
		out, _ = rv.Addr().Interface().(T)
	}
	return out, nil
}

// assign stores val into the struct field, converting where the types are
// compatible: direct assignment, numeric conversion, pointer allocation, and
// element-wise slice conversion from []any.
func assign(fv reflect.Value, val reflect.Value) {
	ft := fv.Type()
	switch {
	case val.Type().AssignableTo(ft):
		fv.Set(val)
	case val.Type().ConvertibleTo(ft) && ft.Kind() != reflect.String:
		fv.Set(val.Convert(ft))
	case ft.Kind() == reflect.Pointer:
		elem := reflect.New(ft.Elem())
		assign(elem.Elem(), val)
		fv.Set(elem)
	case ft.Kind() == reflect.Slice && val.Kind() == reflect.Slice:
		out := reflect.MakeSlice(ft, val.Len(), val.Len())
		for i := 0; i < val.Len(); i++ {
			item := val.Index(i)
			if item.Kind() == reflect.Interface {
				item = item.Elem()
			}
			assign(out.Index(i), item)
		}
		fv.Set(out)
	}
}
