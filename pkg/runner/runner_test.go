package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/runner"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun_ParsesFilesInPathOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.mn":      "let b = 1;\nb + 2",
		"a.json":    `{"a": [1, 2,]}`,
		"c/d.mini":  "fn f(x) { return x; }",
		"c/e.mini":  "let = ;",
		"skip.text": "ignored",
	})

	result, err := runner.New(newRegistry()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []struct {
		path  string
		lang  string
		diags int
	}{
		{"a.json", "json", 1},
		{"b.mn", "mini", 0},
		{"c/d.mini", "mini", 0},
		{"c/e.mini", "mini", 2},
	}

	if len(result.Files) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(result.Files), len(want))
	}

	for i, w := range want {
		got := result.Files[i]
		if got.Path != filepath.Join(dir, w.path) {
			t.Errorf("Files[%d].Path = %s, want %s", i, got.Path, w.path)
		}
		if got.Error != nil {
			t.Errorf("Files[%d].Error = %v", i, got.Error)
			continue
		}
		if got.Language != w.lang {
			t.Errorf("Files[%d].Language = %s, want %s", i, got.Language, w.lang)
		}
		if n := len(got.Diagnostics()); n != w.diags {
			t.Errorf("Files[%d] has %d diagnostics, want %d: %v", i, n, w.diags, got.Diagnostics())
		}
	}

	stats := result.Stats
	if stats.FilesDiscovered != 4 || stats.FilesProcessed != 4 || stats.FilesErrored != 0 {
		t.Errorf("unexpected file stats: %+v", stats)
	}
	if stats.FilesWithIssues != 2 || stats.DiagnosticsTotal != 3 {
		t.Errorf("unexpected diagnostic stats: %+v", stats)
	}
	if stats.DiagnosticsByKind[diag.KindTrailingCommaNotAllowed.String()] != 1 {
		t.Errorf("DiagnosticsByKind = %v", stats.DiagnosticsByKind)
	}
	if !result.HasIssues() || result.HasFailures() {
		t.Errorf("HasIssues = %v, HasFailures = %v", result.HasIssues(), result.HasFailures())
	}
}

func TestRun_UnknownLanguageIsFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "plain words"})

	result, err := runner.New(newRegistry()).Run(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesErrored != 1 || !result.HasFailures() {
		t.Fatalf("Stats = %+v, want one errored file", result.Stats)
	}
	if !errors.Is(result.Files[0].Error, lang.ErrUnknownLanguage) {
		t.Errorf("Error = %v, want ErrUnknownLanguage", result.Files[0].Error)
	}
}

func TestRun_ForcedLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "let a = 1;"})

	result, err := runner.New(newRegistry()).Run(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
		Language:   "mini",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := result.Files[0]
	if got.Error != nil || got.Language != "mini" || got.Result.HasErrors() {
		t.Errorf("outcome = %+v", got)
	}
}

func TestRun_MarkdownRegions(t *testing.T) {
	t.Parallel()

	doc := "# Doc\n\n```json\n[1,]\n```\n\n```mini\nlet a = 1;\n```\n\n```cobol\nDISPLAY.\n```\n"
	offset := len("# Doc\n\n```json\n")

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": doc})

	result, err := runner.New(newRegistry()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Markdown:   true,
		Extensions: []string{".md"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Files) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(result.Files))
	}

	got := result.Files[0]
	if got.Language != "markdown" || len(got.Regions) != 2 {
		t.Fatalf("outcome language %q with %d regions", got.Language, len(got.Regions))
	}

	diags := got.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if !errors.Is(diags[0], diag.ErrTrailingCommaNotAllowed) || diags[0].Offset != offset+2 {
		t.Errorf("diagnostic = %v at %d, want trailing comma at %d", diags[0], diags[0].Offset, offset+2)
	}
	if result.Stats.RegionsParsed != 2 {
		t.Errorf("RegionsParsed = %d, want 2", result.Stats.RegionsParsed)
	}
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.New(newRegistry()).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.HasIssues() {
		t.Errorf("Run() on empty dir = %+v", result)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.mn": "a", "b.mn": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(newRegistry()).Run(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}
