package md2post

import (
	"regexp"
	"strings"
)

// Precompiled inline patterns.
var (
	// Markdown-style link: [text](url)
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// Footnote forward reference: [^3]
	footnoteRefPattern = regexp.MustCompile(`\[\^(\d+)\]`)
)

// delimiterStyle maps an inline delimiter character to the style it
// toggles. The second return is false for non-delimiter characters.
func delimiterStyle(c byte) (Style, bool) {
	switch c {
	case '*':
		return StyleBold, true
	case '_':
		return StyleItalic, true
	case '$':
		return StyleInlineMath, true
	case '`':
		return StyleInlineCode, true
	}
	return StylePlain, false
}

// toggle computes the next style when a delimiter for target is seen.
// Delimiters are symmetric: the same character opens the style from any
// other state and closes it back to plain.
func toggle(current, target Style) Style {
	if current == target {
		return StylePlain
	}
	return target
}

// isLiteral reports whether a style suspends delimiter handling until
// its own closing character.
func isLiteral(s Style) bool {
	return s == StyleInlineMath || s == StyleInlineCode
}

// inlineScanner is the state of the left-to-right inline scan: an
// escape flag, the currently toggled style, a literal-mode flag, and
// an accumulation buffer.
type inlineScanner struct {
	runs    []Run
	buf     strings.Builder
	style   Style
	literal bool
	escaped bool
}

// FormatInline tokenizes one raw text string into styled runs.
// Unterminated delimiters degrade to a single run of the open style;
// no error is ever returned.
func FormatInline(src string) []Run {
	s := &inlineScanner{style: StylePlain}

	for i := 0; i < len(src); i++ {
		c := src[i]

		if s.escaped {
			s.buf.WriteByte(c)
			s.escaped = false
			continue
		}

		if s.literal {
			// Only the delimiter of the open literal style closes it.
			if target, ok := delimiterStyle(c); ok && target == s.style {
				s.flush()
				s.style = toggle(s.style, target)
				s.literal = false
			} else {
				s.buf.WriteByte(c)
			}
			continue
		}

		if c == '\\' {
			s.escaped = true
			continue
		}

		target, ok := delimiterStyle(c)
		if !ok {
			s.buf.WriteByte(c)
			continue
		}

		s.flush()
		s.style = toggle(s.style, target)
		s.literal = isLiteral(s.style)
	}

	s.flush()
	return s.runs
}

// flush emits the buffer as a run under the current style and resets
// it. Plain buffers are postprocessed for links and footnote
// references; all other styles emit a single run.
func (s *inlineScanner) flush() {
	if s.buf.Len() == 0 {
		return
	}
	text := s.buf.String()
	s.buf.Reset()

	if s.style == StylePlain {
		s.runs = splitPlain(s.runs, text)
		return
	}
	s.runs = append(s.runs, Run{Text: text, Style: s.style})
}

// splitPlain appends runs for a plain buffer, extracting link and
// footnote-reference spans. Links take precedence: each pass looks for
// the earliest link first and falls back to a footnote reference only
// when no link remains. Text before a match is emitted as one plain
// run without further splitting. Iterative rather than recursive so
// depth does not scale with the number of matches.
func splitPlain(runs []Run, text string) []Run {
	for text != "" {
		if m := linkPattern.FindStringSubmatchIndex(text); m != nil {
			if m[0] > 0 {
				runs = append(runs, Run{Text: text[:m[0]], Style: StylePlain})
			}
			runs = append(runs, Run{
				Text:  text[m[2]:m[3]],
				Style: StyleLink,
				URL:   text[m[4]:m[5]],
			})
			text = text[m[1]:]
			continue
		}

		if m := footnoteRefPattern.FindStringSubmatchIndex(text); m != nil {
			if m[0] > 0 {
				runs = append(runs, Run{Text: text[:m[0]], Style: StylePlain})
			}
			runs = append(runs, Run{Text: text[m[2]:m[3]], Style: StyleFootnoteRef})
			text = text[m[1]:]
			continue
		}

		runs = append(runs, Run{Text: text, Style: StylePlain})
		break
	}
	return runs
}
