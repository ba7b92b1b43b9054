package md2post

import (
	"reflect"
	"testing"
)

func TestParse_NoRawRunsSurvive(t *testing.T) {
	input := "# T\n\npara with *bold* and $m$\n\n[^1]: note _i_\n\n- item `c`\n"

	for _, block := range Parse(input) {
		var runs []Run
		switch v := block.(type) {
		case Paragraph:
			runs = v.Runs
		case Footnote:
			runs = v.Runs
		case List:
			for _, item := range v.Items {
				runs = append(runs, item.Runs...)
			}
		}
		for _, run := range runs {
			if run.Style == StyleRaw {
				t.Errorf("block %T kept a raw run: %+v", block, run)
			}
		}
	}
}

func TestParse_FormatsParagraphsAndFootnotes(t *testing.T) {
	input := "before *bold* after\n\n[^2]: see [doc](u)"
	want := []Block{
		Paragraph{Runs: []Run{
			{Text: "before ", Style: StylePlain},
			{Text: "bold", Style: StyleBold},
			{Text: " after ", Style: StylePlain},
		}},
		Footnote{ID: "2", Runs: []Run{
			{Text: "see ", Style: StylePlain},
			{Text: "doc", Style: StyleLink, URL: "u"},
		}},
	}

	got := Parse(input)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(%q):\ngot:  %+v\nwant: %+v", input, got, want)
	}
}

func TestParse_LeavesOtherBlocksUntouched(t *testing.T) {
	input := "```go\n*not bold*\n```"
	want := []Block{CodeBlock{Lang: "go", Body: "*not bold*\n"}}

	got := Parse(input)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(%q):\ngot:  %+v\nwant: %+v", input, got, want)
	}
}
