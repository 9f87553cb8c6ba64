package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

type lexFlags struct {
	trivia    bool
	noContext bool
}

func newLexCommand(app *app) *cobra.Command {
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex <file|->",
		Short: "Print the token stream of a file",
		Long: `Lex a file and print one token per line with its kind, byte span and
text. Trivia tokens are hidden unless --trivia is given. Lexer diagnostics
are printed after the tokens.`,
		Example: `  oakwood lex main.mn
  echo '{"a": 1}' | oakwood lex --language json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.trivia, "trivia", false, "include whitespace and comment tokens")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source lines under diagnostics")

	return cmd
}

func runLex(cmd *cobra.Command, app *app, path string, flags *lexFlags) error {
	logger := logging.FromContext(cmd.Context())

	buf, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	language, err := app.language(buf)
	if err != nil {
		return err
	}

	result := lang.NewLexer(language, lexer.Options{MaxDepth: app.cfg.MaxDepth, Logger: logger}).Lex(buf)
	logger.Debug("lexed",
		logging.FieldPath, buf.Path(),
		logging.FieldLanguage, language.Name(),
		logging.FieldTokens, len(result.Tokens),
	)

	out := cmd.OutOrStdout()
	styles := app.styles(out)
	vocab := language.Vocabulary()
	src := buf.Bytes()

	for _, tok := range result.Tokens {
		if !flags.trivia && syntax.IsTrivia(vocab, tok.Kind) {
			continue
		}

		kind := styles.TokenKind.Render(vocab.Name(tok.Kind))
		if tok.Kind == vocab.Error() {
			kind = styles.ErrorNode.Render(vocab.Name(tok.Kind))
		}

		fmt.Fprintf(out, "%s %s %s\n",
			kind,
			styles.Span.Render(fmt.Sprintf("%d..%d", tok.Start, tok.End)),
			styles.TokenText.Render(fmt.Sprintf("%q", tok.Text(src))),
		)
	}

	if len(result.Diagnostics) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	printDiagnostics(out, styles, buf.Path(), result.Diagnostics, buf.Lines(), !flags.noContext)

	return ErrDiagnosticsFound
}
