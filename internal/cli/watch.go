package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

const defaultDebounce = 100 * time.Millisecond

type watchFlags struct {
	debounce  time.Duration
	noContext bool
}

func newWatchCommand(app *app) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reparse a file incrementally whenever it changes",
		Long: `Watch a file and reparse it each time it is saved.

Each change is turned into a minimal set of edits against the previous
version, so the session relexes and rebuilds only what changed. After
every reparse the reuse statistics and current diagnostics are printed.
Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd, app, args[0], flags)
		},
	}

	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before reparsing")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source lines under diagnostics")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, app *app, path string, flags *watchFlags) error {
	logger := logging.FromContext(ctx)

	w, err := newDocumentWatcher(app, path, cmd.OutOrStdout(), logger, !flags.noContext)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, which drops a watch on the
	// file itself, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	logger.Info("watching", logging.FieldPath, path)

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(flags.debounce)
			} else {
				timer.Reset(flags.debounce)
			}
			trigger = timer.C

		case <-trigger:
			trigger = nil
			if err := w.reload(ctx); err != nil {
				logger.Warn("reparse failed", logging.FieldPath, path, logging.FieldError, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

// documentWatcher holds the incremental session of a watched file.
type documentWatcher struct {
	path        string
	session     *incremental.Session
	out         io.Writer
	styles      *pretty.Styles
	logger      *log.Logger
	showContext bool
}

func newDocumentWatcher(app *app, path string, out io.Writer, logger *log.Logger, showContext bool) (*documentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	buf, err := source.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	language, err := app.language(buf)
	if err != nil {
		return nil, err
	}

	session := incremental.NewSession(language, incremental.Options{
		Logger:   logger,
		Interner: tree.NewInterner(),
		MaxDepth: app.cfg.MaxDepth,
	})

	w := &documentWatcher{
		path:        abs,
		session:     session,
		out:         out,
		styles:      app.styles(out),
		logger:      logger,
		showContext: showContext,
	}

	result, err := session.Open(buf)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	w.report(result)

	return w, nil
}

// reload reads the file again and applies the difference to the session.
// Unchanged content is not reparsed.
func (w *documentWatcher) reload(ctx context.Context) error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.path, err)
	}

	current := w.session.Result()
	edits := edit.Diff(current.Buffer.Bytes(), data)
	if len(edits) == 0 {
		return nil
	}

	result, err := w.session.ApplyContext(ctx, edits)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}

	w.logger.Debug("reparsed",
		logging.FieldPath, w.path,
		logging.FieldEdits, len(edits),
		logging.FieldTokensReused, result.Stats.TokensReused,
		logging.FieldNodesReused, result.Stats.NodesReused,
	)
	w.report(result)

	return nil
}

func (w *documentWatcher) report(result *incremental.Result) {
	fmt.Fprint(w.out, w.styles.FormatReuse(result.Stats))

	if !result.HasErrors() {
		fmt.Fprintln(w.out, w.styles.Success.Render("no issues"))
		return
	}

	printDiagnostics(w.out, w.styles, result.Buffer.Path(), result.Diagnostics, result.Buffer.Lines(), w.showContext)
}
