package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found for one invocation. Empty
// fields mean no file of that layer exists.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/oakwood/config.{yaml,yml,toml}.
	User string

	// Project is the nearest .oakwood.{yml,yaml,toml} above the working
	// directory.
	Project string

	// Explicit comes from --config.
	Explicit string
}

// Candidate file names, in order of preference.
var (
	projectConfigNames = []string{".oakwood.yml", ".oakwood.yaml", ".oakwood.toml"}
	userConfigNames    = []string{"config.yaml", "config.yml", "config.toml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	if dir, ok := userConfigDir(); ok {
		paths.User = firstFile(dir, userConfigNames)
	}

	return paths, nil
}

// FindProjectConfig walks upward from startDir and returns the first
// project config file found. The search ends without a match at a VCS
// root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || hasVCSMarker(dir) {
			return "", nil
		}
		dir = parent
	}
}

func userConfigDir() (string, bool) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "oakwood"), true
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	return filepath.Join(home, ".config", "oakwood"), true
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func hasVCSMarker(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
