package md2post

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// renderer maps a finalized block sequence to an HTML fragment. It is
// stateless apart from read-only configuration and never mutates the
// blocks it renders.
type renderer struct {
	imagesDir string
	math      MathRenderer
	highlight bool
}

// tagged wraps s in an element with a trailing newline.
func tagged(s, tag string) string {
	return fmt.Sprintf("<%s>%s</%s>\n", tag, s, tag)
}

// document renders every block in order and concatenates the results.
func (r *renderer) document(ctx context.Context, blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(r.block(ctx, block))
	}
	return b.String()
}

func (r *renderer) block(ctx context.Context, block Block) string {
	switch v := block.(type) {
	case Paragraph:
		return tagged(r.runs(ctx, v.Runs), "p")

	case Header:
		// Every level past 1 folds into h2.
		if v.Level == 1 {
			return tagged(v.Text, "h1") + "<hr><br>"
		}
		return tagged(v.Text, "h2")

	case CodeBlock:
		if r.highlight {
			if html, ok := highlightCode(v.Lang, v.Body); ok {
				return html
			}
		}
		return fmt.Sprintf("<pre><code class=\"code-%s\">%s</code></pre>", v.Lang, v.Body)

	case MathBlock:
		return fmt.Sprintf("<span class=\"display-math\">%s</span>", r.mathSVG(ctx, v.Body, true))

	case Image:
		src := path.Join(r.imagesDir, v.URL)
		if v.Width == 100 {
			return fmt.Sprintf("<img src=\"%s\" alt=\"%s\" class=\"image\">", src, v.Alt)
		}
		return fmt.Sprintf("<img src=\"%s\" alt=\"%s\" class=\"image\" style=\"width: %d%%;\">", src, v.Alt, v.Width)

	case HTMLBlock:
		return v.Body

	case Quote:
		return fmt.Sprintf("<p class=\"quote\">%s</p>\n", v.Text)

	case Footnote:
		return fmt.Sprintf("<p id=\"fn%s\"><a href=\"#ref%s\">[%s]</a> %s</p>",
			v.ID, v.ID, v.ID, r.runs(ctx, v.Runs))

	case List:
		return r.list(ctx, v)
	}
	return ""
}

func (r *renderer) runs(ctx context.Context, runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(r.run(ctx, run))
	}
	return b.String()
}

func (r *renderer) run(ctx context.Context, run Run) string {
	switch run.Style {
	case StyleBold:
		return fmt.Sprintf("<span class=\"bold\"> %s </span>", run.Text)
	case StyleItalic:
		return fmt.Sprintf("<span class=\"italic\"> %s </span>", run.Text)
	case StyleInlineMath:
		return fmt.Sprintf("<span class=\"inline-math\">%s</span>", r.mathSVG(ctx, run.Text, false))
	case StyleInlineCode:
		return fmt.Sprintf(" <span class=\"inline-code\">%s</span>", run.Text)
	case StyleLink:
		return fmt.Sprintf("<a href=\"%s\">%s</a>", run.URL, run.Text)
	case StyleFootnoteRef:
		return fmt.Sprintf("<sup id=\"ref%s\"><a href=\"#fn%s\">[%s]</a></sup>",
			run.Text, run.Text, run.Text)
	default:
		// Plain, and Raw if one ever leaks past the assembler.
		return run.Text
	}
}

// mathSVG delegates to the math pipeline. A failed expression degrades
// to an inline error marker; the rest of the document keeps rendering.
func (r *renderer) mathSVG(ctx context.Context, fragment string, display bool) string {
	svg, err := r.math.RenderSVG(ctx, fragment, display)
	if err != nil {
		return fmt.Sprintf("<code class=\"latex-error\">%s</code>", err)
	}
	return svg
}

// list reconstructs nested markup from the flat (level, content)
// sequence. Each level increase opens one nested list element; each
// decrease closes the open item, then one list and one item element
// per level. Level jumps larger than one are tolerated: exactly the
// number of elements implied by the delta are opened or closed.
func (r *renderer) list(ctx context.Context, l List) string {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ">")

	level := 0
	for i, item := range l.Items {
		switch {
		case item.Level > level:
			for ; level < item.Level; level++ {
				b.WriteString("<" + tag + ">")
			}
		case item.Level < level:
			b.WriteString("</li>")
			for ; level > item.Level; level-- {
				b.WriteString("</" + tag + "></li>")
			}
		default:
			if i > 0 {
				b.WriteString("</li>")
			}
		}
		b.WriteString("<li>")
		b.WriteString(r.runs(ctx, item.Runs))
	}

	if len(l.Items) > 0 {
		b.WriteString("</li>")
	}
	for ; level > 0; level-- {
		b.WriteString("</" + tag + "></li>")
	}
	b.WriteString("</" + tag + ">\n")
	return b.String()
}
