package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/embedded"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/langdetect"
	"github.com/yaklabco/oakwood/pkg/source"
)

// Runner parses a batch of documents with a bounded number of goroutines.
type Runner struct {
	registry *lang.Registry
	detector *langdetect.Detector
}

// New creates a Runner that resolves languages through registry.
func New(registry *lang.Registry) *Runner {
	return &Runner{
		registry: registry,
		detector: langdetect.New(registry),
	}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are ordered by path whatever order the parses finish in.
//
// A file that cannot be read or whose language cannot be detected is
// recorded as an errored outcome; it does not stop the run. Cancelling ctx
// stops scheduling new files and returns the partial result with the
// context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, r.registry, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	outcomes := make([]*FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			outcome := r.processFile(ctx, path, opts, logger)
			outcomes[i] = &outcome

			return nil
		})
	}

	// Workers never fail the group; per-file errors live in the outcomes.
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// processFile reads, detects and parses a single document.
func (r *Runner) processFile(ctx context.Context, path string, opts Options, logger *log.Logger) FileOutcome {
	outcome := FileOutcome{Path: path}

	buf, err := source.ReadFile(path)
	if err != nil {
		outcome.Error = diag.IO(path, err)
		return outcome
	}
	outcome.Buffer = buf

	if opts.Markdown && isMarkdown(path) {
		regions, err := embedded.ParseRegions(ctx, buf, r.detector, embedded.Options{
			Logger:   logger,
			MaxDepth: opts.MaxDepth,
		})
		if err != nil {
			outcome.Error = err
			return outcome
		}

		outcome.Language = "markdown"
		outcome.Regions = regions

		return outcome
	}

	l, err := r.language(path, buf.Bytes(), opts.Language)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Language = l.Name()
	outcome.Result = incremental.Parse(l, buf, incremental.Options{
		Logger:   logger,
		MaxDepth: opts.MaxDepth,
	})

	logger.Debug("parsed",
		"path", path,
		"language", outcome.Language,
		"tokens", outcome.Result.Stats.Tokens,
		"diagnostics", len(outcome.Result.Diagnostics),
	)

	return outcome
}

func (r *Runner) language(path string, content []byte, forced string) (lang.Language, error) {
	if forced != "" {
		l, err := r.registry.Lookup(forced)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", forced, err)
		}
		return l, nil
	}

	return r.detector.ForFile(path, content)
}

func isMarkdown(path string) bool {
	return slices.Contains(MarkdownExtensions(), strings.ToLower(filepath.Ext(path)))
}
