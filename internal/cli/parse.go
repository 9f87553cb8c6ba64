package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/config"
	"github.com/yaklabco/oakwood/pkg/incremental"
)

type parseFlags struct {
	format    string
	trivia    bool
	noContext bool
}

func newParseCommand(app *app) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a file and print the lossless syntax tree.

Formats:
  text   indented tree with kinds, spans and token text (default)
  sexpr  compact nested lists of kinds and token text
  json   the tree and diagnostics as a JSON document

Diagnostics are printed after the tree in text and sexpr formats. The tree
is complete even when the input has syntax errors.`,
		Example: `  oakwood parse main.mn
  oakwood parse --format sexpr config.json
  oakwood parse --trivia --format json main.mn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, sexpr, json")
	cmd.Flags().BoolVar(&flags.trivia, "trivia", false, "include whitespace and comment tokens")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source lines under diagnostics")

	return cmd
}

func runParse(cmd *cobra.Command, app *app, path string, flags *parseFlags) error {
	logger := logging.FromContext(cmd.Context())

	format := app.cfg.Format
	if flags.format != "" {
		format = config.OutputFormat(flags.format)
	}
	if !format.IsValid() {
		return fmt.Errorf("invalid format %q: must be text, sexpr, or json", format)
	}

	trivia := flags.trivia
	if !cmd.Flags().Changed("trivia") {
		trivia = config.Bool(app.cfg.ShowTrivia)
	}

	buf, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	language, err := app.language(buf)
	if err != nil {
		return err
	}

	result := incremental.Parse(language, buf, incremental.Options{Logger: logger, MaxDepth: app.cfg.MaxDepth})
	logger.Debug("parsed",
		logging.FieldPath, buf.Path(),
		logging.FieldLanguage, language.Name(),
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldDuration, result.Stats.Duration,
	)

	out := cmd.OutOrStdout()
	styles := app.styles(out)

	switch format {
	case config.FormatJSON:
		if err := writeJSON(out, language.Name(), result, trivia); err != nil {
			return err
		}
	case config.FormatSExpr:
		fmt.Fprintln(out, result.SExpr())
	default:
		fmt.Fprint(out, styles.FormatTree(result.Root, result.Vocabulary(), buf.Bytes(), pretty.TreeOptions{
			Trivia: trivia,
			Width:  treeWidth(out),
		}))
	}

	if !result.HasErrors() {
		return nil
	}

	if format != config.FormatJSON {
		fmt.Fprintln(out)
		printDiagnostics(out, styles, buf.Path(), result.Diagnostics, buf.Lines(), !flags.noContext)
	}

	return ErrDiagnosticsFound
}
