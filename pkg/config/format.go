package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat is the serialisation of a configuration file.
type FileFormat string

const (
	FileYAML FileFormat = "yaml"
	FileTOML FileFormat = "toml"
)

// FileFormatOf picks the serialisation from a file name.
func FileFormatOf(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FileYAML, nil
	case ".toml":
		return FileTOML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension: %s", path)
	}
}

// Decode parses data in the given format.
func Decode(format FileFormat, data []byte) (*Config, error) {
	switch format {
	case FileYAML:
		return FromYAML(data)
	case FileTOML:
		return FromTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// Encode serializes c in the given format.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	switch format {
	case FileYAML:
		return c.ToYAML()
	case FileTOML:
		return c.ToTOML()
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
