package configloader

import "github.com/yaklabco/oakwood/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Optional booleans: override wins when set, so false can be forced
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Language != "" {
		result.Language = override.Language
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	if override.ShowTrivia != nil {
		result.ShowTrivia = config.Ptr(*override.ShowTrivia)
	}
	if override.Markdown != nil {
		result.Markdown = config.Ptr(*override.Markdown)
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}
