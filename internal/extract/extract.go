// Package extract locates candidate JSON payloads inside free-form text.
// Candidates are produced in priority order: fenced code blocks first, then
// the first balanced-brace region, then the whole trimmed input as the final
// fallback. The raw input is never mutated.
package extract

import (
	"errors"
	"strings"

	"github.com/josharsh/ensureJson/internal/textscan"
)

// ErrNoJSON reports that the input contains no opening brace or bracket
// anywhere, so no candidate is worth normalizing.
var ErrNoJSON = errors.New("no JSON object or array found in input")

// Candidate is a substring of the raw input considered as the JSON payload.
type Candidate struct {
	Text   string
	Offset int // byte offset of Text within the raw input
}

// Candidates returns the ordered candidate list for raw. When includeFences
// is false the fenced-block scan is skipped entirely and extraction proceeds
// as if the input carried no fences.
func Candidates(raw string, includeFences bool) ([]Candidate, error) {
	if !strings.ContainsAny(raw, "{[") {
		return nil, ErrNoJSON
	}

	var out []Candidate
	if includeFences {
		out = fencedBlocks(raw)
	}
	if c, ok := braceRegion(raw); ok {
		out = appendUnique(out, c)
	}
	out = appendUnique(out, trimmed(raw, 0, len(raw)))
	return out, nil
}

func appendUnique(out []Candidate, c Candidate) []Candidate {
	for _, have := range out {
		if have.Text == c.Text {
			return out
		}
	}
	return append(out, c)
}

// fencedBlocks returns the inner text of every markdown code fence in
// document order. An optional language tag after the opening fence is
// skipped; an unterminated fence runs to the end of input.
func fencedBlocks(raw string) []Candidate {
	var out []Candidate
	i := 0
	for {
		open := strings.Index(raw[i:], "```")
		if open < 0 {
			return out
		}
		body := i + open + 3
		// skip a language tag such as "json" and the newline that ends it
		for body < len(raw) && isTagByte(raw[body]) {
			body++
		}
		if body < len(raw) && raw[body] == '\r' {
			body++
		}
		if body < len(raw) && raw[body] == '\n' {
			body++
		}
		end := strings.Index(raw[body:], "```")
		if end < 0 {
			out = append(out, trimmed(raw, body, len(raw)))
			return out
		}
		out = append(out, trimmed(raw, body, body+end))
		i = body + end + 3
	}
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '-'
}

// braceRegion finds the first top-level '{' or '[' and its best-effort
// matching closer via depth counting that ignores braces inside double-quoted
// string literals. Single quotes are deliberately not honored here: in the
// raw prose surrounding a payload an apostrophe is punctuation, and letting
// it open a string would hide the opener that follows it. When no closer
// matches, the region runs to the end of input and structural balancing is
// left to the normalizer.
func braceRegion(raw string) (Candidate, bool) {
	spans := textscan.ScanDouble(raw)
	start := -1
	depth := 0
	for _, sp := range spans {
		if sp.Kind != textscan.Code {
			continue
		}
		for i := sp.Start; i < sp.End; i++ {
			switch raw[i] {
			case '{', '[':
				if start < 0 {
					start = i
				}
				depth++
			case '}', ']':
				if start < 0 {
					continue
				}
				depth--
				if depth == 0 {
					return Candidate{Text: raw[start : i+1], Offset: start}, true
				}
			}
		}
	}
	if start < 0 {
		return Candidate{}, false
	}
	return trimmed(raw, start, len(raw)), true
}

func trimmed(raw string, start, end int) Candidate {
	s := raw[start:end]
	lead := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	s = strings.TrimSpace(s)
	return Candidate{Text: s, Offset: start + lead}
}
