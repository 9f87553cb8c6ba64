package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/fsutil"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// ErrDiverged is returned by reparse --verify when the incremental tree
// differs from a parse from scratch.
var ErrDiverged = errors.New("incremental parse diverged from full parse")

type reparseFlags struct {
	edits     []string
	to        string
	verify    bool
	showTree  bool
	noReuse   bool
	noContext bool
	write     bool
}

func newReparseCommand(app *app) *cobra.Command {
	flags := &reparseFlags{}

	cmd := &cobra.Command{
		Use:   "reparse <file>",
		Short: "Apply edits to a file and reparse incrementally",
		Long: `Parse a file, apply edits and reparse incrementally, then report how
much of the previous parse was reused.

Edits are given as START:END:TEXT, replacing bytes [START, END) with TEXT.
TEXT may use Go escape sequences such as \n. Several --edit flags form
one batch, all relative to the original text. Alternatively --to names a
second version of the file; the edits are computed by a line diff.

With --write the edited text replaces the file on disk.

With --verify the incremental result is compared with a parse of the
new text from scratch, and any difference is an error.`,
		Example: `  oakwood reparse main.mn --edit 4:5:y
  oakwood reparse config.json --to config.new.json --verify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReparse(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.edits, "edit", "e", nil, "edit as START:END:TEXT (repeatable)")
	cmd.Flags().StringVar(&flags.to, "to", "", "file holding the edited text")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "compare with a parse from scratch")
	cmd.Flags().BoolVar(&flags.showTree, "tree", false, "print the new tree")
	cmd.Flags().BoolVar(&flags.noReuse, "no-reuse", false, "relex incrementally but rebuild every node")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source lines under diagnostics")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the edited text back to the file")
	cmd.MarkFlagsMutuallyExclusive("edit", "to")

	return cmd
}

func runReparse(cmd *cobra.Command, app *app, path string, flags *reparseFlags) error {
	logger := logging.FromContext(cmd.Context())

	buf, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	language, err := app.language(buf)
	if err != nil {
		return err
	}

	edits, err := collectEdits(buf, flags)
	if err != nil {
		return err
	}

	opts := incremental.Options{
		Logger:   logger,
		Interner: tree.NewInterner(),
		MaxDepth: app.cfg.MaxDepth,
		NoReuse:  flags.noReuse,
	}

	session := incremental.NewSession(language, opts)
	if _, err := session.Open(buf); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	result, err := session.ApplyContext(cmd.Context(), edits)
	if err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}

	logger.Debug("reparsed",
		logging.FieldPath, path,
		logging.FieldEdits, len(edits),
		logging.FieldTokensReused, result.Stats.TokensReused,
		logging.FieldNodesReused, result.Stats.NodesReused,
	)

	out := cmd.OutOrStdout()
	styles := app.styles(out)

	if flags.showTree {
		fmt.Fprint(out, result.Dump(false))
	}
	fmt.Fprint(out, styles.FormatReuse(result.Stats))

	if flags.verify {
		if err := verifyAgainstFull(language, result, opts); err != nil {
			return err
		}
		fmt.Fprintln(out, styles.Success.Render("verified: identical to a full parse"))
	}

	if flags.write && path != "-" {
		if err := fsutil.WriteAtomic(cmd.Context(), path, result.Buffer.Bytes(), 0); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		logger.Debug("wrote edited text", logging.FieldPath, path)
	}

	if !result.HasErrors() {
		return nil
	}

	fmt.Fprintln(out)
	printDiagnostics(out, styles, result.Buffer.Path(), result.Diagnostics, result.Buffer.Lines(), !flags.noContext)

	return ErrDiagnosticsFound
}

// collectEdits turns the --edit flags, or the diff against --to, into a
// batch of edits against buf.
func collectEdits(buf *source.Buffer, flags *reparseFlags) ([]edit.TextEdit, error) {
	if flags.to != "" {
		target, err := source.ReadFile(flags.to)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		return edit.Diff(buf.Bytes(), target.Bytes()), nil
	}

	edits := make([]edit.TextEdit, 0, len(flags.edits))
	for _, spec := range flags.edits {
		e, err := parseEditSpec(spec)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}

	return edits, nil
}

// parseEditSpec parses START:END:TEXT. TEXT is unquoted as a Go string
// literal when it is one, and taken literally otherwise.
func parseEditSpec(spec string) (edit.TextEdit, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return edit.TextEdit{}, fmt.Errorf("invalid edit %q: want START:END:TEXT", spec)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return edit.TextEdit{}, fmt.Errorf("invalid edit %q: start: %w", spec, err)
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return edit.TextEdit{}, fmt.Errorf("invalid edit %q: end: %w", spec, err)
	}

	text := parts[2]
	if unquoted, err := strconv.Unquote(`"` + text + `"`); err == nil {
		text = unquoted
	}

	return edit.TextEdit{Start: start, End: end, NewText: text}, nil
}

// verifyAgainstFull parses result's text from scratch and compares trees
// and diagnostics.
func verifyAgainstFull(language lang.Language, result *incremental.Result, opts incremental.Options) error {
	opts.Interner = nil
	fresh := incremental.Parse(language, result.Buffer, opts)

	if !tree.Equal(fresh.Green, result.Green) {
		return fmt.Errorf("%w: trees differ", ErrDiverged)
	}

	if len(fresh.Diagnostics) != len(result.Diagnostics) {
		return fmt.Errorf("%w: %d diagnostics, want %d",
			ErrDiverged, len(result.Diagnostics), len(fresh.Diagnostics))
	}

	for i, d := range fresh.Diagnostics {
		got := result.Diagnostics[i]
		if got.Kind != d.Kind || got.Offset != d.Offset || got.End != d.End {
			return fmt.Errorf("%w: diagnostic %d is %s at %d, want %s at %d",
				ErrDiverged, i, got.Kind, got.Offset, d.Kind, d.Offset)
		}
	}

	return nil
}
