package schema

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	ensurejson "github.com/josharsh/ensureJson"
	"github.com/josharsh/ensureJson/i18n"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func issueAt(code string, params map[string]any) ensurejson.Issues {
	return ensurejson.Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Params: params}}
}

// StringSchema validates string values.
type StringSchema struct {
	minLen  *int
	maxLen  *int
	pattern *regexp.Regexp
	email   bool
}

// String creates a string schema.
func String() *StringSchema { return &StringSchema{} }

// MinLen requires at least n characters (runes).
func (s *StringSchema) MinLen(n int) *StringSchema { s.minLen = &n; return s }

// MaxLen allows at most n characters (runes).
func (s *StringSchema) MaxLen(n int) *StringSchema { s.maxLen = &n; return s }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema { s.pattern = re; return s }

// Email requires the value to look like an email address.
func (s *StringSchema) Email() *StringSchema { s.email = true; return s }

func (s *StringSchema) Parse(v ensurejson.Value) (string, error) {
	if v.Kind() != ensurejson.KindString {
		return "", issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "string", "got": v.Kind().String()})
	}
	str := v.Str()
	var iss ensurejson.Issues
	n := utf8.RuneCountInString(str)
	if s.minLen != nil && n < *s.minLen {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooShort, Message: i18n.T(ensurejson.CodeTooShort, nil), Params: map[string]any{"min": *s.minLen, "got": n}})
	}
	if s.maxLen != nil && n > *s.maxLen {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooLong, Message: i18n.T(ensurejson.CodeTooLong, nil), Params: map[string]any{"max": *s.maxLen, "got": n}})
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodePattern, Message: i18n.T(ensurejson.CodePattern, nil), Params: map[string]any{"pattern": s.pattern.String()}})
	}
	if s.email && !emailRe.MatchString(str) {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeInvalidFormat, Message: i18n.T(ensurejson.CodeInvalidFormat, nil), Params: map[string]any{"format": "email"}})
	}
	if len(iss) > 0 {
		return "", iss
	}
	return str, nil
}

// IntSchema validates integer values, coercing integral floats and numeric
// strings.
type IntSchema struct {
	min *int64
	max *int64
}

// Int creates an integer schema.
func Int() *IntSchema { return &IntSchema{} }

// Min requires the value to be >= n.
func (s *IntSchema) Min(n int64) *IntSchema { s.min = &n; return s }

// Max requires the value to be <= n.
func (s *IntSchema) Max(n int64) *IntSchema { s.max = &n; return s }

func (s *IntSchema) Parse(v ensurejson.Value) (int64, error) {
	var n int64
	switch v.Kind() {
	case ensurejson.KindNumber:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return 0, issueAt(ensurejson.CodeCoercion, map[string]any{"value": string(v.Number()), "target": "integer"})
			}
			i = int64(f)
		}
		n = i
	case ensurejson.KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str()), 10, 64)
		if err != nil {
			return 0, issueAt(ensurejson.CodeCoercion, map[string]any{"value": v.Str(), "target": "integer"})
		}
		n = i
	default:
		return 0, issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "integer", "got": v.Kind().String()})
	}
	var iss ensurejson.Issues
	if s.min != nil && n < *s.min {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooSmall, Message: i18n.T(ensurejson.CodeTooSmall, nil), Params: map[string]any{"min": *s.min, "got": n}})
	}
	if s.max != nil && n > *s.max {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooBig, Message: i18n.T(ensurejson.CodeTooBig, nil), Params: map[string]any{"max": *s.max, "got": n}})
	}
	if len(iss) > 0 {
		return 0, iss
	}
	return n, nil
}

// FloatSchema validates numeric values, coercing numeric strings.
type FloatSchema struct {
	min *float64
	max *float64
	gt  *float64
}

// Float creates a float schema.
func Float() *FloatSchema { return &FloatSchema{} }

// Min requires the value to be >= n.
func (s *FloatSchema) Min(n float64) *FloatSchema { s.min = &n; return s }

// Max requires the value to be <= n.
func (s *FloatSchema) Max(n float64) *FloatSchema { s.max = &n; return s }

// Gt requires the value to be strictly greater than n.
func (s *FloatSchema) Gt(n float64) *FloatSchema { s.gt = &n; return s }

func (s *FloatSchema) Parse(v ensurejson.Value) (float64, error) {
	var f float64
	switch v.Kind() {
	case ensurejson.KindNumber:
		x, err := v.Float64()
		if err != nil {
			return 0, issueAt(ensurejson.CodeCoercion, map[string]any{"value": string(v.Number()), "target": "number"})
		}
		f = x
	case ensurejson.KindString:
		x, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return 0, issueAt(ensurejson.CodeCoercion, map[string]any{"value": v.Str(), "target": "number"})
		}
		f = x
	default:
		return 0, issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "number", "got": v.Kind().String()})
	}
	var iss ensurejson.Issues
	if s.min != nil && f < *s.min {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooSmall, Message: i18n.T(ensurejson.CodeTooSmall, nil), Params: map[string]any{"min": *s.min, "got": f}})
	}
	if s.max != nil && f > *s.max {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooBig, Message: i18n.T(ensurejson.CodeTooBig, nil), Params: map[string]any{"max": *s.max, "got": f}})
	}
	if s.gt != nil && f <= *s.gt {
		iss = ensurejson.AppendIssues(iss, ensurejson.Issue{Path: "/", Code: ensurejson.CodeTooSmall, Message: i18n.T(ensurejson.CodeTooSmall, nil), Params: map[string]any{"gt": *s.gt, "got": f}})
	}
	if len(iss) > 0 {
		return 0, iss
	}
	return f, nil
}

// BoolSchema validates boolean values, coercing "true"/"false" strings.
type BoolSchema struct{}

// Bool creates a boolean schema.
func Bool() *BoolSchema { return &BoolSchema{} }

func (s *BoolSchema) Parse(v ensurejson.Value) (bool, error) {
	switch v.Kind() {
	case ensurejson.KindBool:
		return v.Bool(), nil
	case ensurejson.KindString:
		switch v.Str() {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		}
		return false, issueAt(ensurejson.CodeCoercion, map[string]any{"value": v.Str(), "target": "bool"})
	default:
		return false, issueAt(ensurejson.CodeInvalidType, map[string]any{"expected": "bool", "got": v.Kind().String()})
	}
}

// AnySchema accepts any value and returns its untyped Go representation.
type AnySchema struct{}

// Any creates a schema that passes values through untouched.
func Any() *AnySchema { return &AnySchema{} }

func (s *AnySchema) Parse(v ensurejson.Value) (any, error) { return v.Interface(), nil }
