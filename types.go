package md2post

import (
	"io"
	"time"
)

// Style identifies the inline formatting applied to a Run.
type Style uint8

// Inline styles.
//
// StyleRaw marks text that has not been through inline formatting yet.
// It exists only between block segmentation and document assembly; no
// Raw run survives Parse.
const (
	StyleRaw Style = iota
	StylePlain
	StyleBold
	StyleItalic
	StyleInlineMath
	StyleInlineCode
	StyleFootnoteRef
	StyleLink
)

// String returns the style name for diagnostics.
func (s Style) String() string {
	switch s {
	case StyleRaw:
		return "raw"
	case StylePlain:
		return "plain"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleInlineMath:
		return "inline-math"
	case StyleInlineCode:
		return "inline-code"
	case StyleFootnoteRef:
		return "footnote-ref"
	case StyleLink:
		return "link"
	}
	return "unknown"
}

// Run is a contiguous span of text sharing one inline style.
// URL is set only for StyleLink runs.
type Run struct {
	Text  string
	Style Style
	URL   string
}

// ListItem is a single list entry with its zero-based nesting level.
// The level is derived from leading whitespace (four spaces per level).
type ListItem struct {
	Level int
	Runs  []Run
}

// Block is a top-level structural unit of a parsed document.
// Blocks never nest; list structure is encoded in ListItem levels.
type Block interface {
	block()
}

// Paragraph is a sequence of inline runs joined from one or more
// soft-wrapped source lines.
type Paragraph struct {
	Runs []Run
}

// Header is a section heading. Levels above 2 render as h2.
type Header struct {
	Level int
	Text  string
}

// CodeBlock is a fenced code block with an optional language tag.
type CodeBlock struct {
	Lang string
	Body string
}

// MathBlock is a display math expression rendered as block-level SVG.
type MathBlock struct {
	Body string
}

// Image is a standalone image with a width percentage (100 = natural).
type Image struct {
	Alt   string
	URL   string
	Width int
}

// HTMLBlock is raw HTML passed through verbatim, never escaped.
type HTMLBlock struct {
	Body string
}

// Quote is a single-line block quote.
type Quote struct {
	Text string
}

// Footnote is a footnote definition. Duplicate IDs are not detected;
// rendering emits one anchor per definition.
type Footnote struct {
	ID   string
	Runs []Run
}

// List is a flat sequence of items; Ordered is fixed by the first
// item's marker even when later items use the other marker kind.
type List struct {
	Ordered bool
	Items   []ListItem
}

func (Paragraph) block() {}
func (Header) block()    {}
func (CodeBlock) block() {}
func (MathBlock) block() {}
func (Image) block()     {}
func (HTMLBlock) block() {}
func (Quote) block()     {}
func (Footnote) block()  {}
func (List) block()      {}

// Input contains compilation parameters for a single document.
type Input struct {
	Markup string // dialect source (required)
	Title  string // substituted at {{title}}, usually the filename stem
}

// Result holds the output of one compilation.
type Result struct {
	HTML []byte // full page: fragment substituted into the post template
}

// Option configures a Compiler.
type Option func(*Compiler)

// compilerConfig holds internal configuration for Compiler.
type compilerConfig struct {
	imagesDir    string
	postTemplate string
	mathTemplate string
	latexCmd     string
	dvisvgmCmd   string
	timeout      time.Duration
	highlight    bool
	progress     io.Writer
}

// defaultTimeout bounds each external typesetting call.
const defaultTimeout = 30 * time.Second

// WithImagesDir sets the base directory resolved against relative image URLs.
func WithImagesDir(dir string) Option {
	return func(c *Compiler) {
		c.cfg.imagesDir = dir
	}
}

// WithPostTemplate overrides the embedded post template.
// The template must contain {{content}} and {{title}} placeholders.
func WithPostTemplate(tmpl string) Option {
	return func(c *Compiler) {
		c.cfg.postTemplate = tmpl
	}
}

// WithMathTemplate overrides the embedded LaTeX document template.
// The template must contain a {{content}} placeholder.
func WithMathTemplate(tmpl string) Option {
	return func(c *Compiler) {
		c.cfg.mathTemplate = tmpl
	}
}

// WithCommands overrides the external typesetting command names.
// Empty strings keep the defaults ("latex", "dvisvgm").
func WithCommands(latex, dvisvgm string) Option {
	return func(c *Compiler) {
		if latex != "" {
			c.cfg.latexCmd = latex
		}
		if dvisvgm != "" {
			c.cfg.dvisvgmCmd = dvisvgm
		}
	}
}

// WithTimeout bounds each external typesetting call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2post: WithTimeout duration must be positive")
	}
	return func(c *Compiler) {
		c.cfg.timeout = d
	}
}

// WithHighlighting enables chroma syntax highlighting for fenced code
// blocks whose language tag names a known lexer. Blocks with unknown
// or empty language tags keep the plain <pre><code> rendering.
func WithHighlighting() Option {
	return func(c *Compiler) {
		c.cfg.highlight = true
	}
}

// WithProgress sets a writer for per-expression typesetting progress
// lines. Nil (the default) disables progress output.
func WithProgress(w io.Writer) Option {
	return func(c *Compiler) {
		c.cfg.progress = w
	}
}

// WithMathRenderer replaces the subprocess-backed math renderer.
// Intended for tests and for callers that cache or batch rendering.
func WithMathRenderer(m MathRenderer) Option {
	return func(c *Compiler) {
		c.math = m
	}
}
