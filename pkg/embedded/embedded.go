// Package embedded finds code regions inside Markdown documents and parses
// each one with the plugin its fence names.
package embedded

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/oakwood/pkg/builder"
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/langdetect"
	"github.com/yaklabco/oakwood/pkg/lexer"
	"github.com/yaklabco/oakwood/pkg/source"
	"github.com/yaklabco/oakwood/pkg/syntax"
	"github.com/yaklabco/oakwood/pkg/tree"
)

// Region is the body of one fenced code block, as absolute byte offsets
// into the host document.
type Region struct {
	Start, End int

	// Info is the fence info string, such as "json" or "mini title=x".
	Info string
}

// Regions lists the fenced code blocks of a Markdown document in order.
// Blocks nested in quotes or lists span their container prefixes too, so
// only their first line is guaranteed to be clean code.
func Regions(content []byte) []Region {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var regions []Region
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		info := ""
		if block.Info != nil {
			info = strings.TrimSpace(string(block.Info.Value(content)))
		}

		lines := block.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		regions = append(regions, Region{
			Start: lines.At(0).Start,
			End:   lines.At(lines.Len() - 1).Stop,
			Info:  info,
		})

		return ast.WalkSkipChildren, nil
	})

	return regions
}

// Parsed is the parse of one region. Token and diagnostic offsets are
// absolute in the host document.
type Parsed struct {
	Region   Region
	Language string
	Tokens   []syntax.Token
	Root     *tree.RedNode

	Diagnostics []*diag.Error
}

// Options configures ParseRegions.
type Options struct {
	// Logger reports skipped regions at debug level. Nil discards.
	Logger *log.Logger

	// MaxDepth bounds nested sub-lexing; zero uses the lexer default.
	MaxDepth int
}

// ParseRegions parses every region of buf whose fence resolves to a plugin
// through detector. Regions without a recognisable language are skipped.
// The context is checked between regions.
func ParseRegions(ctx context.Context, buf *source.Buffer, detector *langdetect.Detector, opts Options) ([]Parsed, error) {
	var out []Parsed

	for _, region := range Regions(buf.Bytes()) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse regions: %w", err)
		}

		l, err := detector.ForFence(region.Info, buf.Bytes()[region.Start:region.End])
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Debug("skipping region", "info", region.Info, "start", region.Start, "error", err)
			}

			continue
		}

		out = append(out, parseRegion(buf, region, l, opts))
	}

	return out, nil
}

func parseRegion(buf *source.Buffer, region Region, l lang.Language, opts Options) Parsed {
	lexed := lang.NewLexer(l, lexer.Options{MaxDepth: opts.MaxDepth, Logger: opts.Logger}).
		LexRange(buf, region.Start, region.End)

	b := builder.New(buf.Bytes(), lexed.Tokens, l.Vocabulary(), builder.Options{Logger: opts.Logger})
	l.ParseRoot(b)
	green, parseDiags := b.Finish()

	diags := make([]*diag.Error, 0, len(lexed.Diagnostics)+len(parseDiags))
	diags = append(diags, lexed.Diagnostics...)
	diags = append(diags, parseDiags...)

	return Parsed{
		Region:      region,
		Language:    l.Name(),
		Tokens:      lexed.Tokens,
		Root:        tree.NewRootAt(green, region.Start),
		Diagnostics: diags,
	}
}
