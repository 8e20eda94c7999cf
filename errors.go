package ensurejson

import (
	"errors"
	"fmt"
	"strings"
)

// Stage identifies the phase at which repair gave up on an input.
type Stage int

const (
	StageExtraction    Stage = iota // no JSON-like region found
	StageNormalization              // a repair pass could not be applied
	StageParsing                    // grammar violation survived every candidate
)

func (s Stage) String() string {
	switch s {
	case StageExtraction:
		return "extraction"
	case StageNormalization:
		return "normalization"
	default:
		return "parsing"
	}
}

// FixError reports that the input could not be repaired into valid JSON. It
// carries the original raw input so callers can log or retry with it.
type FixError struct {
	Message string
	Raw     string
	Stage   Stage
	Offset  int // byte offset within the failing candidate, -1 when unknown
}

func (e *FixError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("ensurejson: %s: %s (offset %d)", e.Stage, e.Message, e.Offset)
	}
	return fmt.Sprintf("ensurejson: %s: %s", e.Stage, e.Message)
}

// AsFixError extracts a *FixError from an error using errors.As internally.
func AsFixError(err error) (*FixError, bool) {
	var fe *FixError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeCoercion      = "coercion"
	CodeUnknownKey    = "unknown_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
)

// Issue represents a single schema validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /contact/email, /items/2).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":0, "got":-5})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error. It is
// always collected exhaustively: validation never stops at the first
// offending field.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
