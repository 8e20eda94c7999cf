package ensurejson

import (
	"github.com/josharsh/ensureJson/internal/extract"
	"github.com/josharsh/ensureJson/internal/repair"
)

// Schema validates and converts a parsed Value into T. Implementations are
// provided by the schema package; any type satisfying this interface can be
// passed to ParseAs.
type Schema[T any] interface {
	Parse(v Value) (T, error)
}

// Parse locates the likeliest JSON payload inside raw, applies the enabled
// repair passes, and parses the result into a Value.
//
// Candidates are tried in priority order (fenced code blocks, first
// balanced-brace region, whole trimmed input); the first one that parses
// wins. When every candidate fails, the returned *FixError carries the first
// candidate's diagnostic — the most likely intended target — together with
// the raw input. Parsing is all-or-nothing: no partial value is ever
// returned.
func Parse(raw string, opts ...Options) (Value, error) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	cands, err := extract.Candidates(raw, opt.StripMarkdownFences)
	if err != nil {
		return Value{}, &FixError{
			Message: err.Error(),
			Raw:     raw,
			Stage:   StageExtraction,
			Offset:  -1,
		}
	}

	ropt := repair.Options{
		StripComments:     opt.StripComments,
		NormalizeQuotes:   opt.NormalizeQuotes,
		QuoteKeys:         opt.QuoteUnquotedKeys,
		FixTrailingCommas: opt.FixTrailingCommas,
		Balance:           opt.BalanceBrackets,
	}

	var first *parseError
	for i, cand := range cands {
		text := repair.Normalize(cand.Text, ropt)
		v, perr := parseStrict(text)
		if perr == nil {
			return v, nil
		}
		// An unexpected end of input at the exact tail means balancing
		// under-counted (for example an escaped backslash before a
		// terminating quote). Re-balance exactly once before giving up on
		// this candidate; the cap keeps termination guaranteed.
		if opt.BalanceBrackets && perr.atEnd && perr.off == len(text) {
			if again := repair.Balance(text); again != text {
				if v, rerr := parseStrict(again); rerr == nil {
					return v, nil
				}
			}
		}
		if i == 0 {
			first = perr
		}
	}

	return Value{}, &FixError{
		Message: first.msg,
		Raw:     raw,
		Stage:   StageParsing,
		Offset:  first.off,
	}
}

// ParseAs repairs and parses raw, then validates and coerces the result
// through s. Failures before validation surface as *FixError; schema
// violations surface as Issues with one entry per offending field path.
func ParseAs[T any](raw string, s Schema[T], opts ...Options) (T, error) {
	v, err := Parse(raw, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Parse(v)
}
