package config

import (
	"fmt"
	"strings"
)

// GenerateTemplate returns a commented starter configuration. languages
// lists the plugin names to mention next to the language key.
func GenerateTemplate(format FileFormat, languages []string) ([]byte, error) {
	known := "auto-detect"
	if len(languages) > 0 {
		known = strings.Join(languages, ", ")
	}

	var sb strings.Builder

	switch format {
	case FileYAML:
		sb.WriteString("# oakwood configuration\n\n")
		fmt.Fprintf(&sb, "# Force one language plugin (%s)\n# language: mini\n\n", known)
		sb.WriteString("# Log level: debug, info, warn or error\nlog_level: info\n\n")
		sb.WriteString("# Output format: text, sexpr or json\nformat: text\n\n")
		sb.WriteString("# Styled output: auto, always or never\ncolor: auto\n\n")
		sb.WriteString("# Number of parallel parses (0 = one per CPU)\n# jobs: 0\n\n")
		sb.WriteString("# Parse fenced code blocks in Markdown files\n# markdown: true\n\n")
		sb.WriteString("# File patterns to ignore (doublestar globs)\n# ignore:\n#   - \"vendor/**\"\n")
	case FileTOML:
		sb.WriteString("# oakwood configuration\n\n")
		fmt.Fprintf(&sb, "# Force one language plugin (%s)\n# language = \"mini\"\n\n", known)
		sb.WriteString("# Log level: debug, info, warn or error\nlog_level = \"info\"\n\n")
		sb.WriteString("# Output format: text, sexpr or json\nformat = \"text\"\n\n")
		sb.WriteString("# Styled output: auto, always or never\ncolor = \"auto\"\n\n")
		sb.WriteString("# Number of parallel parses (0 = one per CPU)\n# jobs = 0\n\n")
		sb.WriteString("# Parse fenced code blocks in Markdown files\n# markdown = true\n\n")
		sb.WriteString("# File patterns to ignore (doublestar globs)\n# ignore = [\"vendor/**\"]\n")
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return []byte(sb.String()), nil
}
