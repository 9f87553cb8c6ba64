// Package syntax defines the vocabulary shared by lexers, the tree builder and
// language plugins: kinds, roles and tokens.
package syntax

import "fmt"

// Kind identifies a token or node kind. Kind values are private to a language;
// the engine only interprets them through a Vocabulary.
type Kind uint16

// Role is the language-independent classification of a token kind.
type Role uint8

// Roles drive trivia attachment and generic tooling such as highlighting.
const (
	RoleNone Role = iota
	RoleTrivia
	RoleOperator
	RoleKeyword
	RoleLiteral
	RoleIdentifier
	RoleStructural
	RoleError
	RoleEOF
)

var roleNames = [...]string{
	RoleNone:       "none",
	RoleTrivia:     "trivia",
	RoleOperator:   "operator",
	RoleKeyword:    "keyword",
	RoleLiteral:    "literal",
	RoleIdentifier: "identifier",
	RoleStructural: "structural",
	RoleError:      "error",
	RoleEOF:        "eof",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}

	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Vocabulary describes one language's kinds to the engine.
type Vocabulary interface {
	// Name returns a stable, human-readable name for a kind.
	Name(kind Kind) string

	// Role classifies a token kind. Node kinds report RoleNone.
	Role(kind Kind) Role

	// EOF is the kind of the zero-length end-of-input token.
	EOF() Kind

	// Error is the kind used for both unrecognised tokens and error nodes.
	Error() Kind

	// Root is the kind of the node wrapping a whole document.
	Root() Kind
}

// KindInfo declares one kind in a Table.
type KindInfo struct {
	Kind Kind
	Name string
	Role Role
}

// Table is a slice-backed Vocabulary. Languages declare their kinds once and
// share the table between the lexer and the grammar.
type Table struct {
	names []string
	roles []Role
	eof   Kind
	err   Kind
	root  Kind
}

// NewTable builds a vocabulary. The eof, error and root kinds must appear in
// infos; their roles are forced to RoleEOF and RoleError where relevant.
func NewTable(eof, errKind, root Kind, infos ...KindInfo) *Table {
	size := 0
	for _, info := range infos {
		size = max(size, int(info.Kind)+1)
	}

	table := &Table{
		names: make([]string, size),
		roles: make([]Role, size),
		eof:   eof,
		err:   errKind,
		root:  root,
	}

	for _, info := range infos {
		table.names[info.Kind] = info.Name
		table.roles[info.Kind] = info.Role
	}

	if int(eof) < size {
		table.roles[eof] = RoleEOF
	}
	if int(errKind) < size {
		table.roles[errKind] = RoleError
	}

	return table
}

// Name implements Vocabulary.
func (t *Table) Name(kind Kind) string {
	if int(kind) < len(t.names) && t.names[kind] != "" {
		return t.names[kind]
	}

	return fmt.Sprintf("Kind(%d)", uint16(kind))
}

// Role implements Vocabulary.
func (t *Table) Role(kind Kind) Role {
	if int(kind) < len(t.roles) {
		return t.roles[kind]
	}

	return RoleNone
}

// EOF implements Vocabulary.
func (t *Table) EOF() Kind { return t.eof }

// Error implements Vocabulary.
func (t *Table) Error() Kind { return t.err }

// Root implements Vocabulary.
func (t *Table) Root() Kind { return t.root }

// Lookup finds a kind by name.
func (t *Table) Lookup(name string) (Kind, bool) {
	for kind, candidate := range t.names {
		if candidate == name {
			return Kind(kind), true //nolint:gosec // table size is bounded by uint16 kinds
		}
	}

	return 0, false
}

// IsTrivia reports whether kind is trivia in vocab.
func IsTrivia(vocab Vocabulary, kind Kind) bool {
	return vocab.Role(kind) == RoleTrivia
}
