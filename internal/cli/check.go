package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/pkg/config"
	"github.com/yaklabco/oakwood/pkg/reporter"
	"github.com/yaklabco/oakwood/pkg/runner"
)

type checkFlags struct {
	jobs           int
	ignore         []string
	include        []string
	markdown       bool
	followSymlinks bool
	noContext      bool
	stats          bool
	format         string
	compact        bool
}

func newCheckCommand(app *app) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse files and report syntax errors",
		Long: `Parse every file under the given paths in parallel and report diagnostics.

Directories are walked recursively. Files are picked up by the extensions
of the registered languages; hidden files and directories are skipped.
With --markdown, fenced code blocks inside Markdown files are parsed with
the language named in the fence info string.

Reports are styled text by default; --format json and --format sarif write
machine-readable output for editors and code scanning.

Exit status is 0 when every file parsed cleanly, 1 when diagnostics were
reported and 74 when a file could not be read or its language detected.`,
		Example: `  oakwood check
  oakwood check src/ --ignore "testdata/**"
  oakwood check --markdown docs/ README.md
  oakwood check --format sarif > results.sarif`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, app, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only parse files matching these globs")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "parse fenced code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source lines under diagnostics")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed summary")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, or sarif")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "disable indentation in json and sarif output")

	return cmd
}

func runCheck(cmd *cobra.Command, app *app, paths []string, flags *checkFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   append(append([]string(nil), app.cfg.Ignore...), flags.ignore...),
		FollowSymlinks: flags.followSymlinks,
		Jobs:           app.cfg.Jobs,
		Language:       app.cfg.Language,
		Markdown:       config.Bool(app.cfg.Markdown),
		MaxDepth:       app.cfg.MaxDepth,
		Logger:         logger,
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("markdown") {
		opts.Markdown = flags.markdown
	}

	logger.Debug("starting check",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(app.registry).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		Format:          format,
		Color:           string(app.cfg.Color),
		ShowContext:     !flags.noContext,
		DetailedSummary: flags.stats,
		Compact:         flags.compact,
		WorkingDir:      workDir,
		ToolVersion:     app.version,
	})
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Debug("check complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	switch {
	case result.HasFailures():
		return fmt.Errorf("%w: %d of %d files could not be parsed",
			ErrIO, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	case result.HasIssues():
		return ErrDiagnosticsFound
	default:
		return nil
	}
}
