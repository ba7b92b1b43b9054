package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2post "github.com/alnah/go-md2post"
)

func TestDiscoverFiles(t *testing.T) {
	t.Run("single file with wrong extension is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := discoverFiles(path, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("expected ErrInvalidExtension, got %v", err)
		}
	})

	t.Run("single file maps next to itself without output dir", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "post.md")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		files, err := discoverFiles(path, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(files))
		}
		want := filepath.Join(dir, "post.html")
		if files[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
		}
	})

	t.Run("directory walk mirrors tree shape", func(t *testing.T) {
		inDir := t.TempDir()
		sub := filepath.Join(inDir, "drafts")
		if err := os.MkdirAll(sub, 0o750); err != nil {
			t.Fatal(err)
		}
		for _, p := range []string{
			filepath.Join(inDir, "a.md"),
			filepath.Join(sub, "b.md"),
			filepath.Join(inDir, "ignore.txt"),
		} {
			if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		files, err := discoverFiles(inDir, "out")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
		}

		outputs := make(map[string]bool)
		for _, f := range files {
			outputs[f.OutputPath] = true
		}
		for _, want := range []string{
			filepath.Join("out", "a.html"),
			filepath.Join("out", "drafts", "b.html"),
		} {
			if !outputs[want] {
				t.Errorf("missing output path %q in %+v", want, files)
			}
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{
			name:      "no output dir stays beside input",
			inputPath: filepath.Join("posts", "a.md"),
			want:      filepath.Join("posts", "a.html"),
		},
		{
			name:      "explicit html path wins",
			inputPath: "a.md",
			outputDir: filepath.Join("www", "index.html"),
			want:      filepath.Join("www", "index.html"),
		},
		{
			name:      "output dir with plain file",
			inputPath: "a.md",
			outputDir: "www",
			want:      filepath.Join("www", "a.html"),
		},
		{
			name:         "output dir preserves relative subdirectory",
			inputPath:    filepath.Join("posts", "sub", "a.md"),
			outputDir:    "www",
			baseInputDir: "posts",
			want:         filepath.Join("www", "sub", "a.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileAll(t *testing.T) {
	newCompiler := func(t *testing.T) *md2post.Compiler {
		t.Helper()
		comp, err := md2post.NewCompiler()
		if err != nil {
			t.Fatalf("NewCompiler: %v", err)
		}
		return comp
	}

	t.Run("writes output with title from filename stem", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "my-post.md")
		outPath := filepath.Join(dir, "out", "my-post.html")
		if err := os.WriteFile(inPath, []byte("# Hi\n\nbody\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		files := []FileToCompile{{InputPath: inPath, OutputPath: outPath}}
		if err := compileAll(context.Background(), newCompiler(t), files, io.Discard); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(html), "<title>my-post</title>") {
			t.Errorf("title not substituted from stem: %q", html)
		}
		if !strings.Contains(string(html), "<h1>Hi</h1>") {
			t.Errorf("content missing: %q", html)
		}
	})

	t.Run("failed document does not stop the batch", func(t *testing.T) {
		dir := t.TempDir()
		goodIn := filepath.Join(dir, "good.md")
		if err := os.WriteFile(goodIn, []byte("ok\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		files := []FileToCompile{
			{InputPath: filepath.Join(dir, "missing.md"), OutputPath: filepath.Join(dir, "missing.html")},
			{InputPath: goodIn, OutputPath: filepath.Join(dir, "good.html")},
		}

		err := compileAll(context.Background(), newCompiler(t), files, io.Discard)
		if !errors.Is(err, ErrBatchFailed) {
			t.Fatalf("expected ErrBatchFailed, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, "good.html")); statErr != nil {
			t.Errorf("good document was not compiled: %v", statErr)
		}
	})
}
