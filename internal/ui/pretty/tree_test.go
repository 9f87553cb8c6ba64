package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/incremental"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

func TestFormatTree_MatchesDump(t *testing.T) {
	result := incremental.Parse(mini.New(), source.NewBufferString("a.mn", "let x = 1; // one\nx"), incremental.Options{})
	styles := pretty.NewStyles(false)

	for _, trivia := range []bool{false, true} {
		got := styles.FormatTree(result.Root, result.Vocabulary(), result.Buffer.Bytes(), pretty.TreeOptions{Trivia: trivia})
		assert.Equal(t, result.Dump(trivia), got)
	}
}

func TestFormatTree_Truncates(t *testing.T) {
	text := `"` + strings.Repeat("a", 60) + `"`
	result := incremental.Parse(mini.New(), source.NewBufferString("", text), incremental.Options{})
	styles := pretty.NewStyles(false)

	got := styles.FormatTree(result.Root, result.Vocabulary(), result.Buffer.Bytes(), pretty.TreeOptions{Width: 40})

	full := tree.Dump(result.Root, result.Vocabulary(), result.Buffer.Bytes(), tree.DumpOptions{})
	assert.NotEqual(t, full, got)
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 40, line)
	}
	assert.Contains(t, got, "...")
}
