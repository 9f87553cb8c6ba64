package incremental_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lang/json"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

const program = `let x = 1;
let mut total = 0;
fn add(a, b) { return a + b; }
if x > 0 { total += add(x, 2) } else { total = -1 }
while total < 10 { total++ }
let greeting = "hi {total}";
`

// replace builds an edit replacing the first occurrence of old in text.
func replace(t *testing.T, text, old, repl string) edit.TextEdit {
	t.Helper()

	idx := strings.Index(text, old)
	require.GreaterOrEqual(t, idx, 0, "%q not found", old)

	return edit.TextEdit{Start: idx, End: idx + len(old), NewText: repl}
}

type diagView struct {
	Kind       diag.Kind
	Offset     int
	End        int
	Message    string
	Suggestion string
}

func views(diags []*diag.Error) []diagView {
	out := make([]diagView, len(diags))
	for i, d := range diags {
		out[i] = diagView{d.Kind, d.Offset, d.End, d.Message, d.Suggestion}
	}

	return out
}

// requireSameAsFresh checks that result matches parsing its text from
// scratch.
func requireSameAsFresh(t *testing.T, l lang.Language, result *incremental.Result) {
	t.Helper()

	fresh := incremental.Parse(l, source.NewBuffer("", result.Buffer.Bytes()), incremental.Options{})

	require.NoError(t, tree.Validate(result.Green))
	assert.Equal(t, fresh.Tokens, result.Tokens)
	assert.Equal(t, fresh.Dump(true), result.Dump(true))
	assert.True(t, tree.Equal(fresh.Green, result.Green))
	assert.Equal(t, views(fresh.Diagnostics), views(result.Diagnostics))
}

func TestSession_MatchesFreshParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits func(t *testing.T, text string) []edit.TextEdit
	}{
		{
			name: "change literal",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "1;", "42;")}
			},
		},
		{
			name: "append statement",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{{Start: len(text), End: len(text), NewText: "add(1, 2);\n"}}
			},
		},
		{
			name: "prepend statement",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{{Start: 0, End: 0, NewText: "let y = 2;\n"}}
			},
		},
		{
			name: "delete else branch",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, " else { total = -1 }", "")}
			},
		},
		{
			name: "edit function body",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "a + b", "a * b - 1")}
			},
		},
		{
			name: "insert garbage",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "while", ")) while")}
			},
		},
		{
			name: "open unterminated string",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "let mut", `"oops let mut`)}
			},
		},
		{
			name: "remove closing brace",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "b; }", "b;")}
			},
		},
		{
			name: "join statements",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "1;\n", "1 +\n")}
			},
		},
		{
			name: "edit interpolation",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{replace(t, text, "{total}", "{total + x}")}
			},
		},
		{
			name: "several edits",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{
					replace(t, text, "x = 1", "x = 3"),
					replace(t, text, "total++", "total += 2"),
					{Start: len(text), End: len(text), NewText: "x"},
				}
			},
		},
		{
			name: "replace everything",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{{Start: 0, End: len(text), NewText: "1 + 2"}}
			},
		},
		{
			name: "delete everything",
			edits: func(t *testing.T, text string) []edit.TextEdit {
				return []edit.TextEdit{{Start: 0, End: len(text)}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			session := incremental.NewSession(mini.New(), incremental.Options{})
			_, err := session.Open(source.NewBufferString("prog.mini", program))
			require.NoError(t, err)

			result, err := session.Apply(tt.edits(t, program))
			require.NoError(t, err)
			assert.Equal(t, 1, result.Buffer.Version())

			requireSameAsFresh(t, mini.New(), result)
		})
	}
}

func TestSession_EditSequence(t *testing.T) {
	t.Parallel()

	session := incremental.NewSession(mini.New(), incremental.Options{Interner: tree.NewInterner()})
	result, err := session.Open(source.NewBufferString("", ""))
	require.NoError(t, err)

	typed := "let a = f(1, (b) c) ?? d;\nif a { a } else { -a }\n"
	for i := range len(typed) {
		result, err = session.Apply([]edit.TextEdit{{Start: i, End: i, NewText: typed[i : i+1]}})
		require.NoError(t, err)
		requireSameAsFresh(t, mini.New(), result)
	}

	for result.Buffer.Len() > 0 {
		mid := result.Buffer.Len() / 2
		result, err = session.Apply([]edit.TextEdit{{Start: mid, End: mid + 1}})
		require.NoError(t, err)
		requireSameAsFresh(t, mini.New(), result)
	}
}

func TestSession_ReusesUnchangedParts(t *testing.T) {
	t.Parallel()

	session := incremental.NewSession(mini.New(), incremental.Options{})
	first, err := session.Open(source.NewBufferString("", program))
	require.NoError(t, err)
	assert.False(t, first.Stats.Incremental)
	assert.Zero(t, first.Stats.NodesReused)

	result, err := session.Apply([]edit.TextEdit{replace(t, program, "total++", "total--")})
	require.NoError(t, err)

	assert.True(t, result.Stats.Incremental)
	assert.Positive(t, result.Stats.TokensReused)
	assert.GreaterOrEqual(t, result.Stats.NodesReused, 4, "statements before the edit")

	lets := tree.FindByKind(result.Root, mini.LetStatement)
	require.NotEmpty(t, lets)
	oldLets := tree.FindByKind(first.Root, mini.LetStatement)
	assert.Same(t, oldLets[0].Green(), lets[0].Green(), "unchanged subtree is shared")

	requireSameAsFresh(t, mini.New(), result)
}

func TestSession_NoReuse(t *testing.T) {
	t.Parallel()

	session := incremental.NewSession(mini.New(), incremental.Options{NoReuse: true})
	_, err := session.Open(source.NewBufferString("", program))
	require.NoError(t, err)

	result, err := session.Apply([]edit.TextEdit{replace(t, program, "total++", "total--")})
	require.NoError(t, err)
	assert.Zero(t, result.Stats.NodesReused)
	requireSameAsFresh(t, mini.New(), result)
}

func TestSession_JSON(t *testing.T) {
	t.Parallel()

	text := `{"a": [1, 2], "b": {"c": null}}`
	session := incremental.NewSession(json.New(), incremental.Options{})
	_, err := session.Open(source.NewBufferString("doc.json", text))
	require.NoError(t, err)

	result, err := session.Apply([]edit.TextEdit{replace(t, text, "2]", "2,]")})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	require.ErrorIs(t, result.Diagnostics[0], diag.ErrTrailingCommaNotAllowed)
	requireSameAsFresh(t, json.New(), result)
}

func TestSession_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not open", func(t *testing.T) {
		t.Parallel()

		session := incremental.NewSession(mini.New(), incremental.Options{})
		assert.Nil(t, session.Result())

		_, err := session.Apply([]edit.TextEdit{{NewText: "x"}})
		require.ErrorIs(t, err, incremental.ErrNotOpen)
	})

	t.Run("invalid edits", func(t *testing.T) {
		t.Parallel()

		session := incremental.NewSession(mini.New(), incremental.Options{})
		_, err := session.Open(source.NewBufferString("", "abc"))
		require.NoError(t, err)

		_, err = session.Apply([]edit.TextEdit{{Start: 2, End: 10}})
		var validation *edit.ValidationError
		require.ErrorAs(t, err, &validation)

		_, err = session.Apply([]edit.TextEdit{{Start: 0, End: 2}, {Start: 1, End: 3}})
		var conflict *edit.ConflictError
		require.ErrorAs(t, err, &conflict)

		assert.Equal(t, "abc", session.Result().Buffer.String(), "failed edits leave the document alone")
	})

	t.Run("empty edit list", func(t *testing.T) {
		t.Parallel()

		session := incremental.NewSession(mini.New(), incremental.Options{})
		first, err := session.Open(source.NewBufferString("", "a"))
		require.NoError(t, err)

		same, err := session.Apply(nil)
		require.NoError(t, err)
		assert.Same(t, first, same)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		session := incremental.NewSession(mini.New(), incremental.Options{})
		first, err := session.Open(source.NewBufferString("", "a"))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = session.ApplyContext(ctx, []edit.TextEdit{{Start: 1, End: 1, NewText: "b"}})
		require.ErrorIs(t, err, context.Canceled)
		assert.Same(t, first, session.Result())
	})
}

// blockingLanguage parks ParseRoot until released so a second caller can
// observe the session in use.
type blockingLanguage struct {
	lang.Language

	block   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (l *blockingLanguage) ParseRoot(b *builder.Builder) {
	if l.block.Load() {
		l.entered <- struct{}{}
		<-l.release
	}

	l.Language.ParseRoot(b)
}

func TestSession_ConcurrentApply(t *testing.T) {
	t.Parallel()

	blocking := &blockingLanguage{
		Language: mini.New(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}

	session := incremental.NewSession(blocking, incremental.Options{})
	_, err := session.Open(source.NewBufferString("", "a"))
	require.NoError(t, err)

	blocking.block.Store(true)
	done := make(chan error, 1)
	go func() {
		_, err := session.Apply([]edit.TextEdit{{Start: 1, End: 1, NewText: "b"}})
		done <- err
	}()

	<-blocking.entered
	_, err = session.Apply([]edit.TextEdit{{Start: 0, End: 0, NewText: "c"}})
	require.ErrorIs(t, err, incremental.ErrConcurrentApply)

	_, err = session.Open(source.NewBufferString("", "z"))
	require.ErrorIs(t, err, incremental.ErrConcurrentApply)

	blocking.block.Store(false)
	close(blocking.release)
	require.NoError(t, <-done)
	assert.Equal(t, "ab", session.Result().Buffer.String())
}

func TestSession_ApplyLSP(t *testing.T) {
	t.Parallel()

	session := incremental.NewSession(mini.New(), incremental.Options{})
	_, err := session.Open(source.NewBufferString("", "let a = 1;\nlet b = 2;\n"))
	require.NoError(t, err)

	result, err := session.ApplyLSP(context.Background(), []any{
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 8},
				End:   protocol.Position{Line: 1, Character: 9},
			},
			Text: "20",
		},
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 2, Character: 0},
				End:   protocol.Position{Line: 2, Character: 0},
			},
			Text: "a + b",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\nlet b = 20;\na + b", result.Buffer.String())
	assert.Equal(t, 2, result.Buffer.Version())
	requireSameAsFresh(t, mini.New(), result)

	_, err = session.ApplyLSP(context.Background(), []any{42})
	require.ErrorIs(t, err, edit.ErrUnsupportedChange)
}
