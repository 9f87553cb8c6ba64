// Package langdetect picks the language plugin for a file or a code
// snippet. Registered extensions win; otherwise go-enry looks at the file
// name, shebang and content, and a few cheap patterns recognise the
// reference languages.
package langdetect

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/oakwood/pkg/lang"
)

// Text is returned by Detect when nothing matched.
const Text = "text"

const (
	langJSON = "json"
	langMini = "mini"
	langBash = "bash"
)

// classifierCandidates narrows enry's classifier to languages worth telling
// apart from the ones plugins exist for.
var classifierCandidates = []string{
	"JSON", "JavaScript", "TypeScript", "Go", "Python", "Rust",
	"Shell", "YAML", "Markdown",
}

// Detect returns a lower-case language name for content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(name)
	}

	if name := detectByPattern(content); name != "" {
		return name
	}

	if name, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && name != "" {
		return normalize(name)
	}

	return Text
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	if name := detectJSON(trimmed); name != "" {
		return name
	}

	return detectMini(string(content))
}

// detectJSON accepts an object or array opener followed by a quote or a
// closer, which rules out mini blocks such as "{ x }".
func detectJSON(trimmed []byte) string {
	if len(trimmed) < 2 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return ""
	}

	rest := bytes.TrimSpace(trimmed[1:])
	if len(rest) > 0 && (rest[0] == '"' || rest[0] == '}' || rest[0] == ']' || trimmed[0] == '[') {
		return langJSON
	}

	return ""
}

// detectMini looks for constructs only mini combines: let with mut or
// const, fn declarations without type annotations, and the null
// coalescing operator next to a let.
func detectMini(text string) string {
	switch {
	case strings.Contains(text, "let mut ") && strings.Contains(text, ";") && !strings.Contains(text, "fn main()"):
		return langMini
	case strings.Contains(text, "let const "):
		return langMini
	case strings.Contains(text, "fn ") && strings.Contains(text, "return ") && !strings.Contains(text, "->"):
		return langMini
	case strings.Contains(text, "let ") && strings.Contains(text, "??"):
		return langMini
	}

	return ""
}

// normalize converts go-enry language names to registry names.
func normalize(name string) string {
	if name == "Shell" {
		return langBash
	}

	return strings.ToLower(name)
}

// Detector resolves languages against a registry.
type Detector struct {
	registry *lang.Registry
}

// New creates a detector over registry.
func New(registry *lang.Registry) *Detector {
	return &Detector{registry: registry}
}

// ForFile picks the plugin for path. The extension is tried first, then
// go-enry's file name and extension tables, and finally the content.
func (d *Detector) ForFile(path string, content []byte) (lang.Language, error) {
	if l, err := d.registry.ForPath(path); err == nil {
		return l, nil
	}

	if name, safe := enry.GetLanguageByFilename(path); safe {
		if l, err := d.registry.Lookup(normalize(name)); err == nil {
			return l, nil
		}
	}

	if name, safe := enry.GetLanguageByExtension(path); safe {
		if l, err := d.registry.Lookup(normalize(name)); err == nil {
			return l, nil
		}
	}

	if l, err := d.ForContent(content); err == nil {
		return l, nil
	}

	return nil, fmt.Errorf("%w: cannot detect language of %s", lang.ErrUnknownLanguage, path)
}

// ForFence picks the plugin for a fenced code block. The first word of the
// info string names the language; an empty info string falls back to the
// content.
func (d *Detector) ForFence(info string, content []byte) (lang.Language, error) {
	if fields := strings.Fields(info); len(fields) > 0 {
		return d.registry.Lookup(fields[0])
	}

	return d.ForContent(content)
}

// ForContent picks the plugin by looking at content alone.
func (d *Detector) ForContent(content []byte) (lang.Language, error) {
	name := Detect(content)
	if name == Text {
		return nil, fmt.Errorf("%w: no language recognised", lang.ErrUnknownLanguage)
	}

	return d.registry.Lookup(name)
}
