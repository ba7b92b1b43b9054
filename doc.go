// Package md2post compiles a lightweight markup dialect into HTML
// post pages, rendering LaTeX math expressions to inline SVG through
// external typesetting tools.
//
// # Quick Start
//
// Create a compiler and compile a document:
//
//	comp, err := md2post.NewCompiler()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := comp.Compile(ctx, md2post.Input{
//	    Markup: "# Hello\n\nInline math: $e^{i\\pi}$",
//	    Title:  "hello",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// # The Dialect
//
// The input format is markdown-like but deliberately not a markdown
// implementation. Blocks are dispatched on line prefixes: # headers,
// ``` fenced code, \[ display math, ![alt](url){width} images, <!--
// comments, <html> raw passthrough, >> single-line quotes, [^1]:
// footnote definitions, and -/*/label. list items. Inline text uses
// symmetric toggles: *bold*, _italic_, `code`, $math$, with \ escaping
// and [text](url) links and [^1] footnote references inside plain
// spans.
//
// # Compilation Pipeline
//
// Each document flows strictly forward:
//
//  1. Block segmentation (line scan into a flat block sequence)
//  2. Inline formatting (styled run tokenization per block)
//  3. Rendering (blocks to an HTML fragment)
//  4. Template substitution ({{content}} and {{title}})
//
// Math expressions are rendered during stage 3 by writing a LaTeX
// fragment to a temporary directory, running latex, and converting the
// DVI to SVG with dvisvgm. A failed expression becomes an inline error
// marker; the rest of the document still renders.
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	comp, err := md2post.NewCompiler(
//	    md2post.WithImagesDir("/static/images"),
//	    md2post.WithTimeout(time.Minute),
//	    md2post.WithHighlighting(),
//	)
//
// # External Tool Requirements
//
// Math rendering requires latex and dvisvgm on PATH (or the commands
// configured with WithCommands). Documents without math never spawn a
// subprocess.
package md2post
