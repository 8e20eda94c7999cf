package schema

import (
	"strings"

	ensurejson "github.com/josharsh/ensureJson"
)

// AnyAdapter wraps a typed schema so heterogeneous fields can live in one
// object builder. Obtain one via Of.
type AnyAdapter struct {
	parse func(v ensurejson.Value) (any, error)
}

// Of adapts an ensurejson.Schema[T] to an AnyAdapter.
func Of[T any](s ensurejson.Schema[T]) AnyAdapter {
	return AnyAdapter{parse: func(v ensurejson.Value) (any, error) {
		t, err := s.Parse(v)
		if err != nil {
			return nil, err
		}
		return t, nil
	}}
}

// escapeToken escapes a key for use in a JSON Pointer (RFC 6901).
func escapeToken(key string) string {
	if !strings.ContainsAny(key, "~/") {
		return key
	}
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

// rebase prefixes every issue path in err with the given JSON Pointer
// segment, so nested violations surface with their full location.
func rebase(prefix string, err error) ensurejson.Issues {
	iss, ok := ensurejson.AsIssues(err)
	if !ok {
		return ensurejson.Issues{{Path: prefix, Code: ensurejson.CodeParseError, Message: err.Error()}}
	}
	out := make(ensurejson.Issues, 0, len(iss))
	for _, it := range iss {
		switch it.Path {
		case "", "/":
			it.Path = prefix
		default:
			it.Path = prefix + it.Path
		}
		out = append(out, it)
	}
	return out
}
