package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/oakwood/pkg/lang"
)

// Discover finds documents matching opts and returns their absolute paths
// in sorted order. Directories are walked recursively and filtered by
// extension; files named explicitly are kept whatever their extension, so
// only the include and exclude globs apply to them.
func Discover(ctx context.Context, registry *lang.Registry, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discovery{
		workDir:    workDir,
		extensions: extensionSet(opts.effectiveExtensions(registry)),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if err := d.visitInput(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)

	return d.files, nil
}

// discovery accumulates the files of one Discover call.
type discovery struct {
	workDir    string
	extensions map[string]struct{}
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discovery) visitInput(ctx context.Context, input string) error {
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		if d.passesGlobs(path) {
			d.add(path)
		}
		return nil
	}

	if err := d.walk(ctx, path); err != nil {
		return fmt.Errorf("walk directory %s: %w", path, err)
	}

	return nil
}

func (d *discovery) add(path string) {
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// walk visits root recursively. Hidden entries below root are skipped, as
// are unreadable entries and broken symlinks.
func (d *discovery) walk(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if matchesAny(d.rel(path), d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.visitSymlink(ctx, path)
		}

		if d.wanted(path) {
			d.add(path)
		}

		return nil
	})
}

// visitSymlink adds a file link like a regular file and walks a directory
// link's target when FollowSymlinks is set. Walking the target rather than
// the link keeps WalkDir, which does not follow its root, from recursing.
func (d *discovery) visitSymlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if !info.IsDir() {
		if d.wanted(path) {
			d.add(path)
		}
		return nil
	}

	if !d.opts.FollowSymlinks {
		return nil
	}

	return d.walk(ctx, target)
}

// wanted reports whether a walked file has a known extension and passes the
// globs.
func (d *discovery) wanted(path string) bool {
	if _, ok := d.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}

	return d.passesGlobs(path)
}

func (d *discovery) passesGlobs(path string) bool {
	rel := d.rel(path)

	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return false
	}

	return len(d.opts.IncludeGlobs) == 0 || matchesAny(rel, d.opts.IncludeGlobs)
}

func (d *discovery) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	return abs, nil
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func matchesAny(path string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(path, pattern)
	})
}

// matchGlob matches a slash-separated path against a doublestar pattern.
// "dir/**" also matches dir itself, and patterns without a slash match the
// base name, so "*.json" skips JSON files at any depth.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	candidates := []string{pattern}
	if trimmed, ok := strings.CutSuffix(pattern, "/**"); ok {
		candidates = append(candidates, trimmed)
	}

	for _, candidate := range candidates {
		if ok, err := doublestar.Match(candidate, path); err == nil && ok {
			return true
		}
	}

	if strings.Contains(pattern, "/") {
		return false
	}

	ok, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && ok
}
