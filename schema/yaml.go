package schema

import (
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	ensurejson "github.com/josharsh/ensureJson"
)

// descriptor is the YAML shape accepted by FromYAML. It mirrors the common
// JSON Schema vocabulary for the subset this package validates.
type descriptor struct {
	Type             string                 `yaml:"type"`
	Fields           map[string]*descriptor `yaml:"fields"`
	Required         []string               `yaml:"required"`
	Items            *descriptor            `yaml:"items"`
	Unknown          string                 `yaml:"unknown"` // "strip" (default) or "strict"
	MinLength        *int                   `yaml:"minLength"`
	MaxLength        *int                   `yaml:"maxLength"`
	Pattern          string                 `yaml:"pattern"`
	Format           string                 `yaml:"format"` // "email"
	Minimum          *float64               `yaml:"minimum"`
	Maximum          *float64               `yaml:"maximum"`
	ExclusiveMinimum *float64               `yaml:"exclusiveMinimum"`
	MinItems         *int                   `yaml:"minItems"`
	MaxItems         *int                   `yaml:"maxItems"`
	Default          any                    `yaml:"default"`
	Nullable         bool                   `yaml:"nullable"`
}

// FromYAML imports a YAML schema descriptor into a built object schema. The
// document root must describe an object.
func FromYAML(data []byte) (ensurejson.Schema[map[string]any], error) {
	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schema: decode descriptor: %w", err)
	}
	if d.Type != "object" {
		return nil, fmt.Errorf("schema: descriptor root must be an object, got %q", d.Type)
	}
	return d.object()
}

func (d *descriptor) object() (ensurejson.Schema[map[string]any], error) {
	b := Object()
	if d.Unknown == "strict" {
		b.UnknownStrict()
	}
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fd := d.Fields[name]
		ad, err := fd.adapter()
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}
		step := b.Field(name, ad)
		if fd.Nullable {
			step.Nullable()
		}
		if fd.Default != nil {
			step.Default(fd.Default)
		}
	}
	b.Require(d.Required...)
	return b.Build()
}

func (d *descriptor) adapter() (AnyAdapter, error) {
	switch d.Type {
	case "string":
		s := String()
		if d.MinLength != nil {
			s.MinLen(*d.MinLength)
		}
		if d.MaxLength != nil {
			s.MaxLen(*d.MaxLength)
		}
		if d.Pattern != "" {
			re, err := regexp.Compile(d.Pattern)
			if err != nil {
				return AnyAdapter{}, fmt.Errorf("invalid pattern: %w", err)
			}
			s.Pattern(re)
		}
		if d.Format == "email" {
			s.Email()
		}
		return Of[string](s), nil
	case "integer":
		s := Int()
		if d.Minimum != nil {
			s.Min(int64(*d.Minimum))
		}
		if d.Maximum != nil {
			s.Max(int64(*d.Maximum))
		}
		return Of[int64](s), nil
	case "number":
		s := Float()
		if d.Minimum != nil {
			s.Min(*d.Minimum)
		}
		if d.Maximum != nil {
			s.Max(*d.Maximum)
		}
		if d.ExclusiveMinimum != nil {
			s.Gt(*d.ExclusiveMinimum)
		}
		return Of[float64](s), nil
	case "boolean":
		return Of[bool](Bool()), nil
	case "array":
		if d.Items == nil {
			return Of[[]any](Array(Of[any](Any()))), nil
		}
		elem, err := d.Items.adapter()
		if err != nil {
			return AnyAdapter{}, err
		}
		s := Array(elem)
		if d.MinItems != nil {
			s.MinItems(*d.MinItems)
		}
		if d.MaxItems != nil {
			s.MaxItems(*d.MaxItems)
		}
		return Of[[]any](s), nil
	case "object":
		inner, err := d.object()
		if err != nil {
			return AnyAdapter{}, err
		}
		return Of[map[string]any](inner), nil
	case "", "any":
		return Of[any](Any()), nil
	default:
		return AnyAdapter{}, fmt.Errorf("unsupported type %q", d.Type)
	}
}
