//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/oakwood"
	mainPkg = "./cmd/oakwood"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"fz":  Fuzz.Default,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
	Fuzz  st.Namespace
)

// Build compiles bin/oakwood with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}

	fmt.Println("Building oakwood...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Smoke builds the binary and runs it over a few inline documents.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "oakwood-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	docs := map[string]string{
		"ok.json": `{"name": "oakwood", "tags": ["incremental"]}`,
		"ok.mn":   "let mut total = 0;\nwhile total < 3 { total += 1; }\n",
	}
	for name, text := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o600); err != nil {
			return err
		}
	}

	if err := sh.RunV(binary, "languages"); err != nil {
		return err
	}
	if err := sh.RunV(binary, "check", "--stats", dir); err != nil {
		return err
	}
	return sh.RunV(binary, "reparse", "--verify", "--edit", "16:17:4", filepath.Join(dir, "ok.mn"))
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs oakwood to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing oakwood...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Engine runs only the engine packages, without the CLI.
func (Test) Engine() error {
	return gotestsum("pkgname-and-test-fails", "./pkg/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Fuzz.Seeds,
		CI.ModTidy,
		CI.Cross,
	)
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'")
	}
	return nil
}

// Cross builds for every release platform.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)

		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the benchmarks with allocation counts.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Incremental compares a full parse with a single-edit reparse.
func (Bench) Incremental() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "-count=5", "./pkg/incremental")
}

// fuzzTargets lists the fuzz tests by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/lexer", "FuzzLex_Coverage"},
	{"./pkg/lexer", "FuzzRelex_MatchesLex"},
	{"./pkg/edit", "FuzzDiff_RoundTrip"},
	{"./pkg/edit", "FuzzChanges_Mapping"},
	{"./pkg/lang/mini", "FuzzParse_Coverage"},
}

// Default runs every fuzz target for FUZZTIME (default 30s) each.
func (Fuzz) Default() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	for _, f := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", f.pkg, f.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+f.name+"$", "-fuzztime="+fuzzTime, f.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", f.name, err)
		}
	}
	return nil
}

// Seeds runs the fuzz targets over their seed corpora only.
func (Fuzz) Seeds() error {
	for _, f := range fuzzTargets {
		if err := sh.RunV("go", "test", "-run=^"+f.name+"$", f.pkg); err != nil {
			return fmt.Errorf("fuzz seeds %s: %w", f.name, err)
		}
	}
	return nil
}

// gotestsum runs the test suite under gotestsum with the given output
// format. Packages default to ./...
func gotestsum(format string, pkgs ...string) error {
	if len(pkgs) == 0 {
		pkgs = []string{"./..."}
	}

	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{
		"tool", "gotestsum", "-f", format, "--",
		"-race", "-p", nCores, "-parallel", nCores,
		"-coverprofile=coverage.out", "-covermode=atomic",
	}

	return sh.RunV("go", append(args, pkgs...)...)
}

func readModFiles() (string, error) {
	var b strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		b.Write(data)
	}
	return b.String(), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)

	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
