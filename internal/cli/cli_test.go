package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/oakwood/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

// execute runs the root command with args and returns what it printed.
// Color is always off so output can be compared as plain text.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "oakwood" {
		t.Errorf("expected Use to be 'oakwood', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{
		"lex", "parse", "check", "reparse", "watch", "repl", "languages", "config", "version",
	}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}

	for _, name := range []string{"init", "show", "env"} {
		if _, _, err := cmd.Find([]string{"config", name}); err != nil {
			t.Errorf("expected config subcommand %q to exist, got error: %v", name, err)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "lex", flags: []string{"trivia", "no-context"}},
		{command: "parse", flags: []string{"format", "trivia", "no-context"}},
		{command: "check", flags: []string{"jobs", "ignore", "include", "markdown", "follow-symlinks", "no-context", "stats", "format", "compact"}},
		{command: "reparse", flags: []string{"edit", "to", "verify", "tree", "no-reuse", "no-context", "write"}},
		{command: "watch", flags: []string{"debounce", "no-context"}},
		{command: "repl", flags: []string{"no-history"}},
		{command: "languages", flags: []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			sub, _, err := cmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("%s command not found: %v", tt.command, err)
			}

			for _, flagName := range tt.flags {
				if sub.Flags().Lookup(flagName) == nil {
					t.Errorf("expected flag %q on %s", flagName, tt.command)
				}
			}
		})
	}
}

func TestPersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color", "language"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected persistent flag %q", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{"test-version", "test-commit", "test-date"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("expected version output to contain %q, got %q", want, out)
		}
	}
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "parse", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "Flags:", "--format", "Global Flags:", "--language"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("expected help to contain %q, got:\n%s", want, out)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: cli.ExitSuccess},
		{name: "diagnostics", err: cli.ErrDiagnosticsFound, want: cli.ExitDiagnostics},
		{name: "config", err: cli.ErrConfig, want: cli.ExitConfigError},
		{name: "io", err: cli.ErrIO, want: cli.ExitIOError},
		{name: "other", err: context.Canceled, want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
