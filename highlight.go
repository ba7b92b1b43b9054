package md2post

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightStyle is the chroma style used for highlighted code blocks.
const highlightStyle = "friendly"

// highlightCode renders a code block through chroma when the language
// tag names a known lexer. Returns ok=false for unknown or empty tags
// and on tokenization failure, so the caller falls back to the plain
// <pre><code> rendering.
func highlightCode(lang, source string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", false
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get(highlightStyle), iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}
