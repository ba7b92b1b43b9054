package md2post

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2post/internal/assets"
)

// Compile-time interface implementation checks.
var (
	_ MathRenderer  = (*MathPipeline)(nil)
	_ CommandRunner = ExecRunner{}
)

// Compiler turns markup dialect source into finished post pages.
// Create with NewCompiler, then call Compile once per document. A
// Compiler holds only read-only configuration and may be reused
// across documents.
type Compiler struct {
	cfg  compilerConfig
	math MathRenderer
}

// NewCompiler creates a Compiler with default configuration: embedded
// templates, "latex" and "dvisvgm" on PATH, a 30s timeout per external
// call. Use options to customize behavior.
func NewCompiler(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		cfg: compilerConfig{
			latexCmd:   "latex",
			dvisvgmCmd: "dvisvgm",
			timeout:    defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.postTemplate == "" {
		c.cfg.postTemplate = assets.PostTemplate()
	}
	if c.cfg.mathTemplate == "" {
		c.cfg.mathTemplate = assets.MathTemplate()
	}
	if !strings.Contains(c.cfg.postTemplate, "{{content}}") {
		return nil, fmt.Errorf("post template: %w", ErrMissingContentPlaceholder)
	}

	// Create the subprocess pipeline unless a renderer was injected
	// (e.g. by tests).
	if c.math == nil {
		pipeline, err := NewMathPipeline(c.cfg.mathTemplate)
		if err != nil {
			return nil, fmt.Errorf("math template: %w", err)
		}
		pipeline.Latex = c.cfg.latexCmd
		pipeline.Dvisvgm = c.cfg.dvisvgmCmd
		pipeline.Timeout = c.cfg.timeout
		pipeline.Progress = c.cfg.progress
		c.math = pipeline
	}

	return c, nil
}

// Compile parses the markup, renders the block sequence, and
// substitutes the fragment and title into the post template. A failed
// math expression degrades to an inline error marker; only context
// cancellation aborts a document. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Compiler) Compile(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	blocks := Parse(input.Markup)
	fragment := c.RenderFragment(ctx, blocks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = "untitled"
	}

	page := strings.ReplaceAll(c.cfg.postTemplate, "{{content}}", fragment)
	page = strings.ReplaceAll(page, "{{title}}", title)
	return &Result{HTML: []byte(page)}, nil
}

// RenderFragment renders a parsed block sequence to an HTML fragment
// without the surrounding page template.
func (c *Compiler) RenderFragment(ctx context.Context, blocks []Block) string {
	r := &renderer{
		imagesDir: c.cfg.imagesDir,
		math:      c.math,
		highlight: c.cfg.highlight,
	}
	return r.document(ctx, blocks)
}
