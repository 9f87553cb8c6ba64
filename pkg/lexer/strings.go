package lexer

import (
	"slices"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// SymmetricConfig describes string literals delimited by runs of identical
// quote characters, optionally tagged with an identifier prefix.
//
// A literal opened by N quotes ends at the next run of N consecutive quotes.
// Exactly two quotes form the empty string.
type SymmetricConfig struct {
	// Quotes lists the accepted quote bytes, for example '"' and '\''.
	Quotes []byte

	// Literal is the kind of a literal emitted as a single token.
	Literal syntax.Kind

	// AllowTag accepts an identifier immediately before the quotes.
	AllowTag bool

	// InterpolatingTags lists the tags whose content is scanned for embedded
	// regions. Include "" to interpolate untagged literals. A nil list
	// disables interpolation.
	InterpolatingTags []string

	// Kinds for the pieces of a literal that contains embedded regions.
	Start, Part, End         syntax.Kind
	InterpStart, InterpEnd   syntax.Kind
	ControlStart, ControlEnd syntax.Kind
	TemplateComment          syntax.Kind
}

// SymmetricString builds a rule for symmetric-delimiter strings.
//
// A literal without embedded regions is one Literal token. Otherwise it is
// split into Start, Part, InterpStart, sub-lexed tokens, InterpEnd and so on,
// ending with End, so that the token stream still covers each byte once.
// Embedded regions are "{expr}", "<% control %>" and "<# comment #>"; a
// backslash before any of "{}<%#" suppresses a marker.
func SymmetricString(cfg SymmetricConfig) Rule {
	return func(s *State) bool {
		start := s.Offset()

		tag := ""
		if cfg.AllowTag && IsIdentStart(s.Peek()) {
			s.Next()
			s.AdvanceWhile(IsIdentContinue)
			tag = s.Slice(start, s.Offset())
		}

		quote := s.PeekByte(0)
		if !slices.Contains(cfg.Quotes, quote) {
			s.Seek(start)
			return false
		}

		count := 0
		for s.PeekByte(0) == quote {
			s.Advance(1)
			count++
		}

		if count == 2 {
			s.Emit(cfg.Literal, start)
			return true
		}

		contentStart := s.Offset()
		run := 0
		for !s.AtEnd() {
			if s.PeekByte(0) != quote {
				run = 0
				s.Next()

				continue
			}

			s.Advance(1)
			run++
			if run == count {
				contentEnd := s.Offset() - count
				interpolate := cfg.InterpolatingTags != nil && slices.Contains(cfg.InterpolatingTags, tag)
				if !interpolate || !hasMarkers(s.src[contentStart:contentEnd]) {
					s.Emit(cfg.Literal, start)
					return true
				}

				end := s.Offset()
				s.EmitSpan(cfg.Start, start, contentStart)
				s.lexContent(cfg, contentStart, contentEnd)
				s.EmitSpan(cfg.End, contentEnd, end)
				s.Seek(end)

				return true
			}
		}

		s.Report(diag.Syntax(start, s.Offset(), "unterminated string literal"))
		s.Emit(cfg.Literal, start)

		return true
	}
}

func hasMarkers(content []byte) bool {
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '{':
			return true
		case '<':
			if i+1 < len(content) && (content[i+1] == '%' || content[i+1] == '#') {
				return true
			}
		}
	}

	return false
}

// lexContent splits string content in [start, end) into parts and embedded
// regions. The cursor's limit is narrowed to end while scanning.
func (s *State) lexContent(cfg SymmetricConfig, start, end int) {
	savedLimit := s.limit
	s.limit = end
	s.Seek(start)

	partStart := start
	flush := func() {
		s.EmitSpan(cfg.Part, partStart, s.Offset())
	}

	for !s.AtEnd() {
		at := s.Offset()

		switch {
		case s.PeekByte(0) == '\\' && isMarkerEscape(s.PeekByte(1)):
			s.Advance(2)
		case s.StartsWith("<#"):
			flush()
			if s.AdvanceUntil("#>") {
				s.Advance(2)
			} else {
				s.Report(diag.Syntax(at, end, "unterminated template comment"))
			}
			s.Emit(cfg.TemplateComment, at)
			partStart = s.Offset()
		case s.StartsWith("<%"):
			flush()
			s.embedded(cfg.ControlStart, cfg.ControlEnd, "<%", "%>", cfg.Part)
			partStart = s.Offset()
		case s.PeekByte(0) == '{':
			flush()
			s.embedded(cfg.InterpStart, cfg.InterpEnd, "{", "}", cfg.Part)
			partStart = s.Offset()
		default:
			s.Next()
		}
	}

	flush()
	s.limit = savedLimit
}

// embedded lexes open, the sub-lexed body and the matching close marker.
func (s *State) embedded(openKind, closeKind syntax.Kind, open, closer string, fallback syntax.Kind) {
	at := s.Offset()
	s.Advance(len(open))
	s.Emit(openKind, at)

	bodyStart := s.Offset()
	closeAt, ok := s.FindClosing(open, closer, bodyStart)
	if !ok {
		s.Report(diag.Syntax(at, s.limit, "unterminated "+open+" region in string"))
		s.SubLex(bodyStart, s.limit, fallback)

		return
	}

	s.SubLex(bodyStart, closeAt, fallback)
	s.Seek(closeAt + len(closer))
	s.EmitSpan(closeKind, closeAt, s.Offset())
}

func isMarkerEscape(b byte) bool {
	switch b {
	case '{', '}', '<', '%', '#':
		return true
	}

	return false
}
