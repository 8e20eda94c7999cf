package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	ensurejson "github.com/josharsh/ensureJson"
	"github.com/josharsh/ensureJson/schema"
)

var (
	schemaFile string
	compact    bool
	indent     string

	noFences         bool
	noTrailingCommas bool
	noQuoteKeys      bool
	noQuoteNormalize bool
	noBalance        bool
	noComments       bool
)

var rootCmd = &cobra.Command{
	Use:   "ensurejson [file]",
	Short: "Repair and validate JSON from LLM output",
	Long: `ensurejson reads messy model output from a file (or stdin when no file
is given), extracts the JSON payload, repairs common formatting defects
and prints strict JSON. With --schema the result is also validated
against a YAML schema descriptor before printing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
	// errors are reported once, by Execute
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "YAML schema descriptor to validate against")
	rootCmd.Flags().BoolVarP(&compact, "compact", "c", false, "print compact JSON instead of indented")
	rootCmd.Flags().StringVar(&indent, "indent", "  ", "indent string for pretty output")

	rootCmd.Flags().BoolVar(&noFences, "no-fences", false, "do not look inside markdown code fences")
	rootCmd.Flags().BoolVar(&noTrailingCommas, "no-trailing-commas", false, "do not remove trailing commas")
	rootCmd.Flags().BoolVar(&noQuoteKeys, "no-quote-keys", false, "do not quote bare object keys")
	rootCmd.Flags().BoolVar(&noQuoteNormalize, "no-normalize-quotes", false, "do not convert single quotes to double quotes")
	rootCmd.Flags().BoolVar(&noBalance, "no-balance", false, "do not close unbalanced brackets")
	rootCmd.Flags().BoolVar(&noComments, "no-comments", false, "do not strip // and /* */ comments")
}

func run(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	opts := ensurejson.DefaultOptions()
	opts.StripMarkdownFences = !noFences
	opts.FixTrailingCommas = !noTrailingCommas
	opts.QuoteUnquotedKeys = !noQuoteKeys
	opts.NormalizeQuotes = !noQuoteNormalize
	opts.BalanceBrackets = !noBalance
	opts.StripComments = !noComments

	if schemaFile != "" {
		return runWithSchema(raw, opts)
	}

	v, err := ensurejson.Parse(raw, opts)
	if err != nil {
		return err
	}
	return emit(v)
}

func runWithSchema(raw string, opts ensurejson.Options) error {
	data, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.FromYAML(data)
	if err != nil {
		return err
	}

	out, err := ensurejson.ParseAs(raw, s, opts)
	if iss, ok := ensurejson.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", it.Path, it.Message, it.Code)
		}
		return fmt.Errorf("%d validation issue(s)", len(iss))
	}
	if err != nil {
		return err
	}
	return emit(out)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func emit(v any) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ensurejson:", err)
		os.Exit(1)
	}
}
