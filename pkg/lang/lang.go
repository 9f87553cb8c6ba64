// Package lang defines the plugin contract between language front ends and
// the parsing engine, and a registry to look plugins up by name or file.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Language is a parsing front end.
type Language interface {
	// Name is the lower-case identifier used in configuration and fence info
	// strings.
	Name() string

	// Extensions lists file extensions, with the leading dot.
	Extensions() []string

	// Vocabulary describes the token and node kinds.
	Vocabulary() syntax.Vocabulary

	// Rules are the lexer rules in priority order.
	Rules() []lexer.Rule

	// ParseRoot drives the builder over a whole document.
	ParseRoot(b *builder.Builder)
}

// NewLexer builds a lexer for l.
func NewLexer(l Language, opts lexer.Options) *lexer.Lexer {
	return lexer.New(&lexer.Language{Vocab: l.Vocabulary(), Rules: l.Rules()}, opts)
}

// ErrUnknownLanguage is returned when no plugin matches a name or file.
var ErrUnknownLanguage = errors.New("unknown language")

// Registry holds plugins by name. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]Language
	byExt      map[string]Language
	aliases    map[string]string
	registered []string
}

// NewRegistry creates a registry holding langs.
func NewRegistry(langs ...Language) *Registry {
	r := &Registry{
		byName:  make(map[string]Language),
		byExt:   make(map[string]Language),
		aliases: make(map[string]string),
	}
	for _, l := range langs {
		r.Register(l)
	}

	return r
}

// Register adds l, replacing any plugin with the same name.
func (r *Registry) Register(l Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(l.Name())
	if _, exists := r.byName[name]; !exists {
		r.registered = append(r.registered, name)
	}
	r.byName[name] = l

	for _, ext := range l.Extensions() {
		r.byExt[strings.ToLower(ext)] = l
	}
}

// Alias makes alias resolve to the plugin called name.
func (r *Registry) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

// Lookup finds a plugin by name or alias, ignoring case.
func (r *Registry) Lookup(name string) (Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := r.aliases[key]; ok {
		key = target
	}

	if l, ok := r.byName[key]; ok {
		return l, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// ForPath finds a plugin by the file extension of path.
func (r *Registry) ForPath(path string) (Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return l, nil
	}

	return nil, fmt.Errorf("%w: no plugin for %s", ErrUnknownLanguage, path)
}

// Names lists registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Clone(r.registered)
	slices.Sort(names)

	return names
}

// Extensions lists every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	return exts
}
