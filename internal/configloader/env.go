package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/oakwood/pkg/config"
)

// envVarPrefix is the prefix for all oakwood environment variables.
const envVarPrefix = "OAKWOOD_"

// envSetter applies one environment value to the configuration.
type envSetter struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"LANGUAGE": {"Force a language plugin", func(cfg *config.Config, v string) error {
		cfg.Language = v
		return nil
	}},
	"LOG_LEVEL": {"Log level: debug, info, warn or error", func(cfg *config.Config, v string) error {
		cfg.LogLevel = v
		return nil
	}},
	"FORMAT": {"Output format: text, sexpr or json", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"COLOR": {"Styled output: auto, always or never", func(cfg *config.Config, v string) error {
		cfg.Color = config.ColorMode(v)
		return nil
	}},
	"JOBS": {"Number of parallel parses (0 = auto)", intSetter(func(cfg *config.Config, i int) { cfg.Jobs = i })},
	"MAX_DEPTH": {"Maximum sub-lexing depth", intSetter(func(cfg *config.Config, i int) { cfg.MaxDepth = i })},
	"SHOW_TRIVIA": {"Include trivia in tree dumps: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.ShowTrivia = config.Ptr(b)
	})},
	"MARKDOWN": {"Parse fenced blocks in Markdown: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Markdown = config.Ptr(b)
	})},
	"IGNORE": {"Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with OAKWOOD_ (e.g., OAKWOOD_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, setter := range envMappings {
		out[envVarPrefix+suffix] = setter.description
	}
	return out
}
