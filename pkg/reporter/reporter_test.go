package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oakwood/pkg/lang"
	langjson "github.com/yaklabco/oakwood/pkg/lang/json"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/reporter"
	"github.com/yaklabco/oakwood/pkg/runner"
)

// runFixture parses files written under a temp dir and returns the dir and
// the run result.
func runFixture(t *testing.T, files map[string]string, paths ...string) (string, *runner.Result) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	registry := lang.NewRegistry(mini.New(), langjson.New())
	result, err := runner.New(registry).Run(context.Background(), runner.Options{
		Paths:      paths,
		WorkingDir: dir,
		Jobs:       1,
	})
	require.NoError(t, err)

	return dir, result
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", want: reporter.FormatSARIF},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, reporter.Format(tt.input).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	dir, result := runFixture(t, map[string]string{
		"bad.json":  "{\"a\": tru}\n",
		"good.json": `{"ok": true}`,
	})

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatText,
		Color:       "never",
		ShowContext: true,
		WorkingDir:  dir,
	})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "bad.json [json] (1 issue)")
	assert.Contains(t, out, "bad.json:1:7")
	assert.Contains(t, out, "Did you mean: true")
	assert.NotContains(t, out, "good.json")
	assert.Contains(t, out, "1 issue in 1 file")
}

func TestTextReporter_FailedFile(t *testing.T) {
	t.Parallel()

	dir, result := runFixture(t, map[string]string{"notes.txt": "plain words"}, "notes.txt")

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: dir})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "notes.txt\n  failed  ")
	assert.Contains(t, buf.String(), "1 file failed")
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	_, result := runFixture(t, map[string]string{"bad.json": "[1,]"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"}).Report(ctx, result)
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	dir, result := runFixture(t, map[string]string{
		"bad.json": "{\"a\": tru}\n",
		"ok.mn":    "let x = 1;",
	})

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, WorkingDir: dir})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 2)
	assert.Equal(t, "bad.json", output.Files[0].Path)
	assert.Equal(t, "json", output.Files[0].Language)
	require.Len(t, output.Files[0].Diagnostics, 1)

	d := output.Files[0].Diagnostics[0]
	assert.Equal(t, "unexpected_token", d.Kind)
	assert.Equal(t, 6, d.StartOffset)
	assert.Equal(t, 9, d.EndOffset)
	assert.Equal(t, 1, d.StartLine)
	assert.Equal(t, 7, d.StartColumn)
	assert.Equal(t, 10, d.EndColumn)
	assert.Equal(t, "true", d.Suggestion)

	assert.Equal(t, "ok.mn", output.Files[1].Path)
	assert.Empty(t, output.Files[1].Diagnostics)

	assert.Equal(t, 2, output.Summary.FilesChecked)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
	assert.Equal(t, 1, output.Summary.ByKind["unexpected_token"])
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	_, result := runFixture(t, map[string]string{"ok.json": "[]"})

	var buf bytes.Buffer
	_, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true}).Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	dir, result := runFixture(t, map[string]string{
		"bad.json":  "{\"a\": tru}\n",
		"list.json": "[1, 2,]",
	})

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatSARIF,
		WorkingDir:  dir,
		ToolVersion: "1.2.3",
	})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)

	run := output.Runs[0]
	assert.Equal(t, "oakwood", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	ruleIDs := make([]string, 0, len(run.Tool.Driver.Rules))
	for _, rule := range run.Tool.Driver.Rules {
		ruleIDs = append(ruleIDs, rule.ID)
	}
	assert.Equal(t, []string{"trailing_comma_not_allowed", "unexpected_token"}, ruleIDs)

	require.Len(t, run.Results, 2)

	first := run.Results[0]
	assert.Equal(t, "unexpected_token", first.RuleID)
	assert.Equal(t, 1, first.RuleIndex)
	assert.Equal(t, "error", first.Level)
	loc := first.Locations[0].PhysicalLocation
	assert.Equal(t, "bad.json", loc.ArtifactLocation.URI)
	assert.Equal(t, 1, loc.Region.StartLine)
	assert.Equal(t, 7, loc.Region.StartColumn)
	assert.Equal(t, 6, loc.Region.CharOffset)
	assert.Equal(t, 3, loc.Region.CharLength)
	require.Len(t, first.Fixes, 1)
	assert.Equal(t, "true", first.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text)

	second := run.Results[1]
	assert.Equal(t, "trailing_comma_not_allowed", second.RuleID)
	assert.Equal(t, 0, second.RuleIndex)
	assert.Equal(t, "list.json", second.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Empty(t, second.Fixes)
}
