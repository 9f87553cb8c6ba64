package builder

import (
	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// ListOptions describes a delimited, separated list.
type ListOptions struct {
	Open, Close, Separator syntax.Kind

	// AllowTrailing accepts a separator directly before Close.
	AllowTrailing bool

	// Stop ends the list early, leaving Close missing, at tokens that cannot
	// occur inside it.
	Stop []syntax.Kind
}

// ParseList parses Open item (Separator item)* Close into the current node
// and returns the number of items. A trailing separator is reported unless
// allowed; an item that consumes nothing is skipped as an error. Open must
// be the current token, or nothing is parsed.
func (b *Builder) ParseList(opts ListOptions, item func()) int {
	if !b.Expect(opts.Open) {
		return 0
	}

	count := 0
	for !b.AtEnd() && !b.At(opts.Close) && !b.AtAny(opts.Stop...) {
		before := b.pos
		item()
		count++

		if b.Stuck(before) {
			b.ErrorAndBump()
			continue
		}

		if b.AtEnd() || b.At(opts.Close) || b.AtAny(opts.Stop...) {
			break
		}

		if b.At(opts.Separator) {
			sep := b.CurrentToken()
			b.Bump()
			if b.At(opts.Close) && !opts.AllowTrailing {
				b.Report(diag.TrailingCommaNotAllowed(sep.Start))
			}

			continue
		}

		b.Report(b.expected(b.vocab.Name(opts.Separator)))
	}

	b.Expect(opts.Close)

	return count
}
