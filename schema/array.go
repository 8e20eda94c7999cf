package schema

import (
	"strconv"

	ensurejson "github.com/josharsh/ensureJson"
	"github.com/josharsh/ensureJson/i18n"
)

// ArraySchema validates a sequence element-by-element, collecting every
// offending index.
type ArraySchema struct {
	elem     AnyAdapter
	minItems *int
	maxItems *int
}

// Array creates an array schema from an element adapter.
func Array(elem AnyAdapter) *ArraySchema { return &ArraySchema{elem: elem} }

// MinItems requires at least n elements.
func (s *ArraySchema) MinItems(n int) *ArraySchema { s.minItems = &n; return s }

// MaxItems allows at most n elements.
func (s *ArraySchema) MaxItems(n int) *ArraySchema { s.maxItems = &n; return s }

func (s *ArraySchema) Parse(v ensurejson.Value) ([]any, error) {
	if v.Kind() != ensurejson.KindArray {
		return nil, issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "array", "got": v.Kind().String()})
	}
	var iss ensurejson.Issues
	n := v.Len()
	if s.minItems != nil && n < *s.minItems {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooShort, Message: i18n.T(ensurejson.CodeTooShort, nil), Params: map[string]any{"min": *s.minItems, "got": n}})
	}
	if s.maxItems != nil && n > *s.maxItems {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooLong, Message: i18n.T(ensurejson.CodeTooLong, nil), Params: map[string]any{"max": *s.maxItems, "got": n}})
	}
	out := make([]any, 0, n)
	for i, item := range v.Items() {
		val, err := s.elem.parse(item)
		if err != nil {
			iss = ensurejson.AppendIssues(iss, rebase("/"+strconv.Itoa(i), err)...)
			continue
		}
		out = append(out, val)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
