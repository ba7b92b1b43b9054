package md2post

import (
	"regexp"
	"strconv"
	"strings"
)

// Precompiled block patterns.
var (
	// Line ending normalization, applied before splitting into lines.
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Standalone image: ![alt](url){width}, width clause optional.
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)(?:\{(\d+)\})?`)

	// Footnote definition: [^3]: text
	footnotePattern = regexp.MustCompile(`^\[\^(\d+)\]:\s*(.*)`)

	// List items. Ordered markers are any non-space, non-dot label
	// followed by a dot; unordered markers are - or *.
	orderedItemPattern   = regexp.MustCompile(`^(\s*)([^\s.]+)\.\s+(.*)$`)
	unorderedItemPattern = regexp.MustCompile(`^(\s*)[-*]\s+(.*)$`)
)

// spacesPerIndent is the leading-space count for one list nesting level.
const spacesPerIndent = 4

// segmenter accumulates blocks during the line scan. The paragraph
// buffer collects soft-wrapped lines; newBlock tracks whether the next
// line may open a non-paragraph block.
type segmenter struct {
	blocks   []Block
	paraBuf  strings.Builder
	newBlock bool
}

// SegmentBlocks splits raw document text into an ordered block
// sequence. Paragraph and footnote content is left as a single Raw run
// for the assembler; list items are inline-formatted here.
func SegmentBlocks(input string) []Block {
	lines := strings.Split(crlfOrCR.ReplaceAllString(input, "\n"), "\n")
	s := &segmenter{newBlock: true}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			s.flushParagraph()
			s.newBlock = true
			continue
		}

		// Mid-paragraph lines join the buffer verbatim; no block type
		// other than paragraph can start here.
		if !s.newBlock {
			s.appendParagraphLine(line)
			continue
		}

		i = s.dispatch(lines, i)
		s.newBlock = false
	}

	s.flushParagraph()
	return s.blocks
}

// dispatch opens a block at lines[i] and returns the index of the last
// line it consumed. Precedence follows the prefix order below; a line
// matching nothing starts a paragraph.
func (s *segmenter) dispatch(lines []string, i int) int {
	line := lines[i]

	switch {
	case strings.HasPrefix(line, "#"):
		level := len(line) - len(strings.TrimLeft(line, "#"))
		s.blocks = append(s.blocks, Header{
			Level: level,
			Text:  strings.TrimSpace(line[level:]),
		})
		return i

	case strings.HasPrefix(line, "```"):
		lang := strings.TrimSpace(line[3:])
		body, last := consumeUntil(lines, i+1, "```", "\n")
		s.blocks = append(s.blocks, CodeBlock{Lang: lang, Body: body})
		return last

	case strings.HasPrefix(line, `\[`):
		body, last := consumeUntil(lines, i+1, `\]`, "\n")
		s.blocks = append(s.blocks, MathBlock{Body: body})
		return last

	case strings.HasPrefix(line, "!["):
		// Malformed image syntax silently produces no block.
		if m := imagePattern.FindStringSubmatch(line); m != nil {
			width := 100
			if m[3] != "" {
				if n, err := strconv.Atoi(m[3]); err == nil {
					width = n
				}
			}
			s.blocks = append(s.blocks, Image{Alt: m[1], URL: m[2], Width: width})
		}
		return i

	case strings.HasPrefix(line, "<!--"):
		// Comments are consumed and discarded, closing line included.
		_, last := consumeUntil(lines, i+1, "-->", "")
		return last

	case strings.HasPrefix(line, "<html>"):
		body, last := consumeUntil(lines, i+1, "</html>", "")
		s.blocks = append(s.blocks, HTMLBlock{Body: body})
		return last

	case strings.HasPrefix(line, ">> "):
		s.blocks = append(s.blocks, Quote{Text: strings.TrimSpace(line[3:])})
		return i

	case strings.HasPrefix(line, "[^"):
		// Malformed footnote definitions silently produce no block.
		if m := footnotePattern.FindStringSubmatch(line); m != nil {
			s.blocks = append(s.blocks, Footnote{
				ID:   m[1],
				Runs: []Run{{Text: m[2], Style: StyleRaw}},
			})
		}
		return i

	case matchListItem(line) != nil:
		return s.consumeList(lines, i)

	default:
		s.appendParagraphLine(line)
		return i
	}
}

// consumeUntil joins lines[start:] with sep until a line starts with
// closing. The closing line is consumed but not included; an
// unterminated block consumes to end of input silently. With a
// non-empty sep every consumed line is followed by one sep.
func consumeUntil(lines []string, start int, closing, sep string) (string, int) {
	var b strings.Builder
	i := start
	for ; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], closing) {
			return b.String(), i
		}
		b.WriteString(lines[i])
		b.WriteString(sep)
	}
	return b.String(), i - 1
}

// listItemLine is one matched list-item line before inline formatting.
type listItemLine struct {
	level   int
	content string
	ordered bool
}

// matchListItem matches a line against the ordered pattern then the
// unordered pattern. Returns nil when the line is not a list item.
func matchListItem(line string) *listItemLine {
	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		return &listItemLine{level: len(m[1]) / spacesPerIndent, content: m[3], ordered: true}
	}
	if m := unorderedItemPattern.FindStringSubmatch(line); m != nil {
		return &listItemLine{level: len(m[1]) / spacesPerIndent, content: m[2]}
	}
	return nil
}

// consumeList greedily consumes contiguous list-item lines starting at
// lines[i] and returns the index of the last one. The list's ordered
// flag is fixed by the first item; mixed marker kinds do not close the
// list. Item content is inline-formatted immediately, unlike paragraph
// text which waits for the assembler.
func (s *segmenter) consumeList(lines []string, i int) int {
	first := matchListItem(lines[i])
	list := List{Ordered: first.ordered}

	last := i
	for ; i < len(lines); i++ {
		item := matchListItem(lines[i])
		if item == nil {
			break
		}
		list.Items = append(list.Items, ListItem{
			Level: item.level,
			Runs:  FormatInline(item.content),
		})
		last = i
	}

	s.blocks = append(s.blocks, list)
	return last
}

// appendParagraphLine joins a source line into the paragraph buffer
// with a trailing space (soft line-wrap join).
func (s *segmenter) appendParagraphLine(line string) {
	s.paraBuf.WriteString(line)
	s.paraBuf.WriteByte(' ')
}

// flushParagraph emits the accumulated paragraph, if any, as a single
// Raw run for the assembler to inline-format.
func (s *segmenter) flushParagraph() {
	if s.paraBuf.Len() == 0 {
		return
	}
	s.blocks = append(s.blocks, Paragraph{
		Runs: []Run{{Text: s.paraBuf.String(), Style: StyleRaw}},
	})
	s.paraBuf.Reset()
}
