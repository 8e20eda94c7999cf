// Package textscan classifies raw candidate text into string, comment and
// structural spans. Every repair pass and the extractor consume the same
// span view so that string and comment contents are never corrupted by a
// textual rewrite.
package textscan

// Kind discriminates the classification of a span.
type Kind int

const (
	Code         Kind = iota // structural text outside strings and comments
	String                   // quoted string literal, delimiters included
	LineComment              // // comment, excluding the trailing newline
	BlockComment             // /* comment */, terminator included
)

// Span is a half-open byte range [Start, End) of uniform classification.
type Span struct {
	Kind  Kind
	Start int
	End   int
	Quote byte // opening quote for String spans: '"' or '\''
	// Closed reports whether a String span saw its closing quote or a
	// BlockComment span saw its terminator before end of input.
	Closed bool
}

// Scan performs a single forward pass over s and returns its spans in order.
// Both double- and single-quoted strings are recognized, since candidates may
// predate quote normalization. Backslash escapes are honored inside strings.
func Scan(s string) []Span { return scan(s, true) }

// ScanDouble is Scan with single quotes treated as plain text. Raw prose uses
// apostrophes as apostrophes ("Here's", "I'll"); treating them as string
// openers would swallow a payload that follows one.
func ScanDouble(s string) []Span { return scan(s, false) }

func scan(s string, singleQuotes bool) []Span {
	var spans []Span
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '"' || c == '\'' && singleQuotes:
			start := i
			quote := c
			i++
			closed := false
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					i += 2
					continue
				}
				if s[i] == quote {
					i++
					closed = true
					break
				}
				i++
			}
			spans = append(spans, Span{Kind: String, Start: start, End: i, Quote: quote, Closed: closed})
		case c == '/':
			if i+1 < len(s) && s[i+1] == '/' {
				start := i
				for i < len(s) && s[i] != '\n' {
					i++
				}
				spans = append(spans, Span{Kind: LineComment, Start: start, End: i, Closed: true})
				continue
			}
			if i+1 < len(s) && s[i+1] == '*' {
				start := i
				i += 2
				closed := false
				for i < len(s) {
					if s[i] == '*' && i+1 < len(s) && s[i+1] == '/' {
						i += 2
						closed = true
						break
					}
					i++
				}
				spans = append(spans, Span{Kind: BlockComment, Start: start, End: i, Closed: closed})
				continue
			}
			spans = appendCode(spans, i)
			i++
		default:
			spans = appendCode(spans, i)
			i++
		}
	}
	return spans
}

// appendCode extends the trailing Code span through byte i, starting a new
// one when the previous span is of a different kind or not adjacent.
func appendCode(spans []Span, i int) []Span {
	if n := len(spans); n > 0 && spans[n-1].Kind == Code && spans[n-1].End == i {
		spans[n-1].End = i + 1
		return spans
	}
	return append(spans, Span{Kind: Code, Start: i, End: i + 1, Closed: true})
}
