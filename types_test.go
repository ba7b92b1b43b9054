package md2post

import (
	"testing"
	"time"
)

func TestStyleString(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{StyleRaw, "raw"},
		{StylePlain, "plain"},
		{StyleBold, "bold"},
		{StyleItalic, "italic"},
		{StyleInlineMath, "inline-math"},
		{StyleInlineCode, "inline-code"},
		{StyleFootnoteRef, "footnote-ref"},
		{StyleLink, "link"},
		{Style(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.style.String(); got != tt.want {
				t.Errorf("Style(%d).String() = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	t.Run("positive duration applies", func(t *testing.T) {
		comp, err := NewCompiler(WithTimeout(5 * time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comp.cfg.timeout != 5*time.Second {
			t.Errorf("timeout = %v, want 5s", comp.cfg.timeout)
		}
	})

	t.Run("zero duration panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for zero duration")
			}
		}()
		WithTimeout(0)
	})

	t.Run("negative duration panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for negative duration")
			}
		}()
		WithTimeout(-time.Second)
	})
}

func TestWithCommands(t *testing.T) {
	t.Run("overrides both commands", func(t *testing.T) {
		comp, err := NewCompiler(WithCommands("xelatex", "dvisvgm-custom"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comp.cfg.latexCmd != "xelatex" {
			t.Errorf("latexCmd = %q, want %q", comp.cfg.latexCmd, "xelatex")
		}
		if comp.cfg.dvisvgmCmd != "dvisvgm-custom" {
			t.Errorf("dvisvgmCmd = %q, want %q", comp.cfg.dvisvgmCmd, "dvisvgm-custom")
		}
	})

	t.Run("empty strings keep defaults", func(t *testing.T) {
		comp, err := NewCompiler(WithCommands("", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comp.cfg.latexCmd != "latex" {
			t.Errorf("latexCmd = %q, want %q", comp.cfg.latexCmd, "latex")
		}
		if comp.cfg.dvisvgmCmd != "dvisvgm" {
			t.Errorf("dvisvgmCmd = %q, want %q", comp.cfg.dvisvgmCmd, "dvisvgm")
		}
	})
}
