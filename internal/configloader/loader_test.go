package configloader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/oakwood/pkg/config"
)

// projectDir returns a temp directory marked as a VCS root so the upward
// search never leaves it.
func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return dir
}

func isolated(dir string) LoadOptions {
	return LoadOptions{WorkingDir: dir, IgnoreUserConfig: true, IgnoreEnv: true}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t, nil)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatText || result.Config.Color != config.ColorAuto {
		t.Errorf("defaults not applied: %+v", result.Config)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".oakwood.yml": "language: mini\nformat: sexpr\n",
		"src/a.mn":     "a",
	})

	result, err := Load(context.Background(), isolated(filepath.Join(dir, "src")))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.Project != filepath.Join(dir, ".oakwood.yml") {
		t.Errorf("Project = %q", result.Paths.Project)
	}
	if result.Config.Language != "mini" || result.Config.Format != config.FormatSExpr {
		t.Errorf("project config not applied: %+v", result.Config)
	}
}

func TestLoad_TOMLProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".oakwood.toml": "jobs = 3\nmarkdown = true\n",
	})

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 3 || !config.Bool(result.Config.Markdown) {
		t.Errorf("toml config not applied: %+v", result.Config)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".oakwood.yml":  "language: mini\njobs: 2\nshow_trivia: true\n",
		"explicit.yaml": "jobs: 5\n",
	})

	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "explicit.yaml")
	opts.CLIConfig = &config.Config{Language: "json", ShowTrivia: config.Ptr(false)}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Language != "json" {
		t.Errorf("Language = %q, want CLI value", cfg.Language)
	}
	if cfg.Jobs != 5 {
		t.Errorf("Jobs = %d, want explicit file value", cfg.Jobs)
	}
	if cfg.ShowTrivia == nil || *cfg.ShowTrivia {
		t.Errorf("ShowTrivia = %v, want CLI false to win", cfg.ShowTrivia)
	}

	want := []string{filepath.Join(dir, ".oakwood.yml"), opts.ExplicitPath}
	if !slices.Equal(result.LoadedFrom, want) {
		t.Errorf("LoadedFrom = %v, want %v", result.LoadedFrom, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"unknown key", map[string]string{".oakwood.yml": "langauge: mini\n"}, "load project config"},
		{"invalid value", map[string]string{".oakwood.yml": "format: xml\n"}, "invalid configuration"},
		{"bad toml", map[string]string{".oakwood.toml": "jobs = \n"}, "load project config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(context.Background(), isolated(projectDir(t, tt.files)))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	// Not parallel: modifies the process environment.
	t.Setenv("OAKWOOD_FORMAT", "json")
	t.Setenv("OAKWOOD_IGNORE", " vendor/** , ,*.tmp")
	t.Setenv("OAKWOOD_MARKDOWN", "false")

	dir := projectDir(t, map[string]string{".oakwood.yml": "format: sexpr\nmarkdown: true\n"})

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreUserConfig: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("Format = %q, want env override", result.Config.Format)
	}
	if !slices.Equal(result.Config.Ignore, []string{"vendor/**", "*.tmp"}) {
		t.Errorf("Ignore = %v", result.Config.Ignore)
	}
	if result.Config.Markdown == nil || *result.Config.Markdown {
		t.Errorf("Markdown = %v, want env false", result.Config.Markdown)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("OAKWOOD_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "OAKWOOD_JOBS") {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"OAKWOOD_LANGUAGE", "OAKWOOD_JOBS", "OAKWOOD_IGNORE"} {
		if vars[name] == "" {
			t.Errorf("ListEnvVars() missing %s", name)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &config.Config{Language: "mini", Jobs: 2, Ignore: []string{"a"}}
	override := &config.Config{Jobs: 4}

	got := merge(base, override)
	if got.Language != "mini" || got.Jobs != 4 || !slices.Equal(got.Ignore, []string{"a"}) {
		t.Errorf("merge() = %+v", got)
	}

	got.Ignore[0] = "changed"
	if base.Ignore[0] != "a" {
		t.Error("merge() aliased the base slice")
	}

	if merge(nil, override).Jobs != 4 || merge(base, nil).Language != "mini" {
		t.Error("merge() with nil side")
	}
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".oakwood.toml":    "jobs = 1\n",
		".oakwood.yml":     "jobs: 2\n",
		"nested/sub/.keep": "",
	})

	got, err := FindProjectConfig(context.Background(), filepath.Join(dir, "nested", "sub"))
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if want := filepath.Join(dir, ".oakwood.yml"); got != want {
		t.Errorf("FindProjectConfig() = %q, want %q", got, want)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := projectDir(t, map[string]string{".oakwood.yml": "jobs: 2\n"})
	inner := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(inner, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindProjectConfig(context.Background(), inner)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("FindProjectConfig() = %q, want no match past the VCS root", got)
	}
}
