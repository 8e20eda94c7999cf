package ensurejson

// Options toggles the individual repair passes. Disabling a flag skips that
// pass entirely rather than substituting a no-op. Parse treats the last
// Options argument as authoritative; when none is given DefaultOptions()
// applies.
type Options struct {
	StripMarkdownFences bool
	FixTrailingCommas   bool
	QuoteUnquotedKeys   bool
	NormalizeQuotes     bool
	BalanceBrackets     bool
	StripComments       bool
}

// DefaultOptions enables every repair pass.
func DefaultOptions() Options {
	return Options{
		StripMarkdownFences: true,
		FixTrailingCommas:   true,
		QuoteUnquotedKeys:   true,
		NormalizeQuotes:     true,
		BalanceBrackets:     true,
		StripComments:       true,
	}
}
