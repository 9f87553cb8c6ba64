package embedded_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/embedded"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lang/json"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/langdetect"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/tree"
)

const doc = "# Title\n\n```json\n[1,]\n```\n\nSome text.\n\n```mini\nlet x = 1;\n```\n\n```cobol\nDISPLAY 'HI'.\n```\n"

func TestRegions(t *testing.T) {
	t.Parallel()

	regions := embedded.Regions([]byte(doc))
	require.Len(t, regions, 3)

	jsonStart := strings.Index(doc, "[1,]")
	assert.Equal(t, embedded.Region{Start: jsonStart, End: jsonStart + len("[1,]\n"), Info: "json"}, regions[0])
	assert.Equal(t, "mini", regions[1].Info)
	assert.Equal(t, "let x = 1;\n", doc[regions[1].Start:regions[1].End])
	assert.Equal(t, "cobol", regions[2].Info)
}

func TestRegions_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, embedded.Regions([]byte("no code here\n\n```\n```\n")))
}

func TestParseRegions(t *testing.T) {
	t.Parallel()

	detector := langdetect.New(lang.NewRegistry(mini.New(), json.New()))
	buf := source.NewBufferString("README.md", doc)

	parsed, err := embedded.ParseRegions(context.Background(), buf, detector, embedded.Options{})
	require.NoError(t, err)
	require.Len(t, parsed, 2, "the cobol block has no plugin")

	jsonPart := parsed[0]
	assert.Equal(t, json.Name, jsonPart.Language)
	assert.Equal(t, jsonPart.Region.Start, jsonPart.Tokens[0].Start, "token offsets are absolute")
	require.Len(t, jsonPart.Diagnostics, 1)
	require.ErrorIs(t, jsonPart.Diagnostics[0], diag.ErrTrailingCommaNotAllowed)
	assert.Equal(t, jsonPart.Region.Start+2, jsonPart.Diagnostics[0].Offset)

	miniPart := parsed[1]
	assert.Equal(t, mini.Name, miniPart.Language)
	assert.Empty(t, miniPart.Diagnostics)
	assert.Equal(t, miniPart.Region.Start, miniPart.Root.Span().Start)
	assert.Equal(t, "let x = 1;\n", miniPart.Root.Text(buf.Bytes()))
	require.NoError(t, tree.Validate(miniPart.Root.Green()))

	lets := tree.FindByKind(miniPart.Root, mini.LetStatement)
	require.Len(t, lets, 1)
	assert.Equal(t, "let x = 1;", lets[0].Text(buf.Bytes()))
}

func TestParseRegions_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	detector := langdetect.New(lang.NewRegistry(json.New()))
	_, err := embedded.ParseRegions(ctx, source.NewBufferString("", doc), detector, embedded.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
