package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

const historyFile = ".oakwood_history"

const replHelp = `Each line you type is appended to the document and reparsed incrementally.

  :tree       print the syntax tree
  :sexpr      print the tree as an s-expression
  :diag       print the current diagnostics
  :text       print the document
  :lang NAME  switch language and start a new document
  :reset      start a new, empty document
  :help       show this help
  :quit       exit
`

type replFlags struct {
	noHistory bool
}

func newReplCommand(app *app) *cobra.Command {
	flags := &replFlags{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Build a document line by line and watch it parse",
		Long: `Start an interactive session on an empty document. Every line entered is
appended to the document, which is then reparsed incrementally; the
reuse statistics and any new diagnostics are shown after each line.

The language is mini unless --language or the config selects another.
Type :help for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not read or write the history file")

	return cmd
}

func runRepl(cmd *cobra.Command, app *app, flags *replFlags) error {
	logger := logging.FromContext(cmd.Context())

	name := app.cfg.Language
	if name == "" {
		name = mini.Name
	}

	out := cmd.OutOrStdout()
	r, err := newRepl(app.registry, name, out, app.styles(out), logger, app.cfg.MaxDepth)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil && !flags.noHistory {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Fprintf(out, "oakwood repl (%s). Type :help for commands.\n", r.language.Name())

	for {
		line, err := ln.Prompt(r.prompt())
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}

		quit, err := r.eval(line)
		if err != nil {
			fmt.Fprintln(out, r.styles.Failure.Render(err.Error()))
		}
		if quit {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}

	return nil
}

// repl is the state of an interactive session.
type repl struct {
	registry *lang.Registry
	language lang.Language
	session  *incremental.Session
	out      io.Writer
	styles   *pretty.Styles
	logger   *log.Logger
	maxDepth int
}

func newRepl(registry *lang.Registry, name string, out io.Writer, styles *pretty.Styles, logger *log.Logger, maxDepth int) (*repl, error) {
	r := &repl{
		registry: registry,
		out:      out,
		styles:   styles,
		logger:   logger,
		maxDepth: maxDepth,
	}

	if err := r.switchLanguage(name); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *repl) prompt() string {
	return r.language.Name() + "> "
}

// switchLanguage starts an empty document in the named language.
func (r *repl) switchLanguage(name string) error {
	language, err := r.registry.Lookup(name)
	if err != nil {
		return err
	}

	r.language = language
	r.session = incremental.NewSession(language, incremental.Options{
		Logger:   r.logger,
		Interner: tree.NewInterner(),
		MaxDepth: r.maxDepth,
	})

	_, err = r.session.Open(source.NewBufferString("<repl>", ""))

	return err
}

// eval handles one line of input. It reports whether the session should
// end.
func (r *repl) eval(line string) (bool, error) {
	trimmed := strings.TrimSpace(line)

	if command, ok := strings.CutPrefix(trimmed, ":"); ok {
		return r.command(command)
	}

	current := r.session.Result()
	end := current.Buffer.Len()
	before := len(current.Diagnostics)

	result, err := r.session.Apply([]edit.TextEdit{{Start: end, End: end, NewText: line + "\n"}})
	if err != nil {
		return false, fmt.Errorf("apply: %w", err)
	}

	fmt.Fprint(r.out, r.styles.FormatReuse(result.Stats))

	// Earlier diagnostics may move or vanish as later lines complete them,
	// so the whole list is shown whenever it changes size.
	if len(result.Diagnostics) != before {
		r.printDiagnostics(result)
	}

	return false, nil
}

func (r *repl) command(command string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	result := r.session.Result()

	switch strings.ToLower(name) {
	case "quit", "q", "exit":
		return true, nil
	case "help", "h":
		fmt.Fprint(r.out, replHelp)
	case "tree":
		fmt.Fprint(r.out, r.styles.FormatTree(result.Root, result.Vocabulary(), result.Buffer.Bytes(), pretty.TreeOptions{}))
	case "sexpr":
		fmt.Fprintln(r.out, result.SExpr())
	case "diag":
		if !result.HasErrors() {
			fmt.Fprintln(r.out, r.styles.Success.Render("no issues"))
			break
		}
		r.printDiagnostics(result)
	case "text":
		fmt.Fprint(r.out, result.Buffer.String())
	case "lang":
		if arg == "" {
			return false, errors.New(":lang needs a language name")
		}
		return false, r.switchLanguage(strings.TrimSpace(arg))
	case "reset":
		return false, r.switchLanguage(r.language.Name())
	default:
		return false, fmt.Errorf("unknown command :%s, type :help", name)
	}

	return false, nil
}

func (r *repl) printDiagnostics(result *incremental.Result) {
	printDiagnostics(r.out, r.styles, "<repl>", result.Diagnostics, result.Buffer.Lines(), true)
}
