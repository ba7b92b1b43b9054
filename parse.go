package md2post

// Parse segments the document and inline-formats every block that
// carries raw text. No Raw run survives this stage.
func Parse(input string) []Block {
	blocks := SegmentBlocks(input)
	for i, b := range blocks {
		blocks[i] = assembleBlock(b)
	}
	return blocks
}

// assembleBlock replaces a block's single Raw run with its formatted
// run sequence. Blocks formatted at parse time (lists) and blocks
// without inline text pass through unchanged.
func assembleBlock(b Block) Block {
	switch v := b.(type) {
	case Paragraph:
		if raw, ok := rawRun(v.Runs); ok {
			return Paragraph{Runs: FormatInline(raw)}
		}
	case Footnote:
		if raw, ok := rawRun(v.Runs); ok {
			return Footnote{ID: v.ID, Runs: FormatInline(raw)}
		}
	}
	return b
}

// rawRun returns the text of the first run when it is the Raw
// placeholder left by the segmenter.
func rawRun(runs []Run) (string, bool) {
	if len(runs) == 1 && runs[0].Style == StyleRaw {
		return runs[0].Text, true
	}
	return "", false
}
