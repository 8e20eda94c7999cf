// Package repair implements the ordered lexical repair passes that turn a
// candidate payload into strictly valid JSON. Each pass is deterministic and
// idempotent: applied to text that already satisfies its target property it
// returns the input unchanged. Passes re-derive the textscan classification
// after the previous pass so string and comment contents stay intact.
package repair

import (
	"strings"

	"github.com/josharsh/ensureJson/internal/textscan"
)

// Options toggles individual passes. A false flag skips the pass entirely.
type Options struct {
	StripComments     bool
	NormalizeQuotes   bool
	QuoteKeys         bool
	FixTrailingCommas bool
	Balance           bool
}

// Pass is a named repair transformation.
type Pass struct {
	Name  string
	Apply func(string) string
}

// Passes returns the enabled passes in their fixed total order: comment
// stripping runs first so the remaining passes see clean structural tokens,
// and balancing runs last over the cleaned text.
func Passes(opt Options) []Pass {
	all := []struct {
		on   bool
		pass Pass
	}{
		{opt.StripComments, Pass{"strip-comments", StripComments}},
		{opt.NormalizeQuotes, Pass{"normalize-quotes", NormalizeQuotes}},
		{opt.QuoteKeys, Pass{"quote-keys", QuoteBareKeys}},
		{opt.FixTrailingCommas, Pass{"trailing-commas", RemoveTrailingCommas}},
		{opt.Balance, Pass{"balance", Balance}},
	}
	out := make([]Pass, 0, len(all))
	for _, p := range all {
		if p.on {
			out = append(out, p.pass)
		}
	}
	return out
}

// Normalize applies every enabled pass to s in order.
func Normalize(s string, opt Options) string {
	for _, p := range Passes(opt) {
		s = p.Apply(s)
	}
	return s
}

// StripComments removes // and /* */ comments outside string literals. Block
// comments are replaced by a single space so adjacent tokens cannot merge.
func StripComments(s string) string {
	spans := textscan.Scan(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, sp := range spans {
		switch sp.Kind {
		case textscan.LineComment:
			// dropped; the trailing newline is outside the span
		case textscan.BlockComment:
			b.WriteByte(' ')
		default:
			b.WriteString(s[sp.Start:sp.End])
		}
	}
	return b.String()
}

// NormalizeQuotes rewrites single-quoted strings to double-quoted ones,
// escaping inner double quotes and unescaping inner single quotes.
// Double-quoted content is untouched. An unterminated single-quote span that
// does not open in key or value position is an apostrophe in surrounding
// prose and is left alone.
func NormalizeQuotes(s string) string {
	spans := textscan.Scan(s)
	var b strings.Builder
	b.Grow(len(s))
	var prev byte // last significant byte before the current span
	for _, sp := range spans {
		if sp.Kind == textscan.Code {
			for i := sp.Start; i < sp.End; i++ {
				if !isSpace(s[i]) {
					prev = s[i]
				}
			}
		}
		if sp.Kind != textscan.String || sp.Quote != '\'' {
			b.WriteString(s[sp.Start:sp.End])
			if sp.Kind == textscan.String {
				prev = '"'
			}
			continue
		}
		if !sp.Closed && !keyOrValuePosition(prev) {
			b.WriteString(s[sp.Start:sp.End])
			prev = '\''
			continue
		}
		prev = '"'
		inner := s[sp.Start+1 : sp.End]
		if sp.Closed {
			inner = inner[:len(inner)-1]
		}
		b.WriteByte('"')
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c == '\\' && i+1 < len(inner) {
				if inner[i+1] == '\'' {
					b.WriteByte('\'')
				} else {
					b.WriteByte('\\')
					b.WriteByte(inner[i+1])
				}
				i++
				continue
			}
			if c == '"' {
				b.WriteString(`\"`)
				continue
			}
			b.WriteByte(c)
		}
		if sp.Closed {
			b.WriteByte('"')
		}
	}
	return b.String()
}

// QuoteBareKeys wraps bare identifier tokens in key-eligible position — after
// '{', ',' or at the start of the candidate — in double quotes when they are
// immediately followed (modulo whitespace and comments) by a colon.
func QuoteBareKeys(s string) string {
	kind := kindAt(s)
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev byte // last significant structural byte seen
	i := 0
	for i < len(s) {
		switch kind[i] {
		case textscan.String:
			b.WriteByte(s[i])
			prev = '"'
			i++
		case textscan.LineComment, textscan.BlockComment:
			b.WriteByte(s[i])
			i++
		default:
			c := s[i]
			if isSpace(c) {
				b.WriteByte(c)
				i++
				continue
			}
			if isIdentStart(c) && (prev == 0 || prev == '{' || prev == ',') {
				j := i + 1
				for j < len(s) && kind[j] == textscan.Code && isIdentByte(s[j]) {
					j++
				}
				if followedByColon(s, kind, j) {
					b.WriteByte('"')
					b.WriteString(s[i:j])
					b.WriteByte('"')
					prev = '"'
					i = j
					continue
				}
				b.WriteString(s[i:j])
				prev = s[j-1]
				i = j
				continue
			}
			b.WriteByte(c)
			prev = c
			i++
		}
	}
	return b.String()
}

// RemoveTrailingCommas deletes a comma immediately followed, modulo
// whitespace and comments, by '}' or ']'.
func RemoveTrailingCommas(s string) string {
	kind := kindAt(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if kind[i] == textscan.Code && s[i] == ',' && closerFollows(s, kind, i+1) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Balance appends whatever the text is missing at its tail: first the closing
// quote of a dangling unterminated string, then the missing structural
// closers in reverse nesting order. String closing deliberately takes
// precedence when both conditions coincide at end of input. Text truncated
// right after a structural comma has the comma dropped before closers are
// appended, since the comma pass sees nothing after it to act on.
func Balance(s string) string {
	spans := textscan.Scan(s)
	var danglingQuote byte
	if n := len(spans); n > 0 {
		if last := spans[n-1]; last.Kind == textscan.String && !last.Closed {
			danglingQuote = last.Quote
		}
	}
	var stack []byte
	for _, sp := range spans {
		if sp.Kind != textscan.Code {
			continue
		}
		for i := sp.Start; i < sp.End; i++ {
			switch s[i] {
			case '{':
				stack = append(stack, '}')
			case '[':
				stack = append(stack, ']')
			case '}', ']':
				if len(stack) > 0 && stack[len(stack)-1] == s[i] {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
	if len(stack) > 0 && danglingQuote == 0 {
		if i := lastSignificant(s, spans); i >= 0 && s[i] == ',' {
			s = s[:i] + s[i+1:]
		}
	}
	var b strings.Builder
	b.Grow(len(s) + len(stack) + 1)
	b.WriteString(s)
	if danglingQuote != 0 {
		b.WriteByte(danglingQuote)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// lastSignificant returns the index of the last byte that is neither
// whitespace nor comment text, or -1 when there is none. String spans count
// whole, closing quote included.
func lastSignificant(s string, spans []textscan.Span) int {
	last := -1
	for _, sp := range spans {
		switch sp.Kind {
		case textscan.Code:
			for i := sp.Start; i < sp.End; i++ {
				if !isSpace(s[i]) {
					last = i
				}
			}
		case textscan.String:
			last = sp.End - 1
		}
	}
	return last
}

// kindAt expands the span view into a per-byte classification.
func kindAt(s string) []textscan.Kind {
	kind := make([]textscan.Kind, len(s))
	for _, sp := range textscan.Scan(s) {
		for i := sp.Start; i < sp.End; i++ {
			kind[i] = sp.Kind
		}
	}
	return kind
}

// followedByColon reports whether the next significant byte at or after i,
// skipping whitespace and comment bytes, is a structural colon.
func followedByColon(s string, kind []textscan.Kind, i int) bool {
	for ; i < len(s); i++ {
		if kind[i] != textscan.Code {
			continue
		}
		if isSpace(s[i]) {
			continue
		}
		return s[i] == ':'
	}
	return false
}

// closerFollows reports whether the next significant byte at or after i,
// skipping whitespace and comment bytes, closes an object or array.
func closerFollows(s string, kind []textscan.Kind, i int) bool {
	for ; i < len(s); i++ {
		if kind[i] != textscan.Code {
			continue
		}
		if isSpace(s[i]) {
			continue
		}
		return s[i] == '}' || s[i] == ']'
	}
	return false
}

// keyOrValuePosition reports whether a string opening after prev would sit
// where JSON expects a key or a value.
func keyOrValuePosition(prev byte) bool {
	return prev == 0 || prev == '{' || prev == '[' || prev == ':' || prev == ','
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
