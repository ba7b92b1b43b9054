package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2post "github.com/alnah/go-md2post"
	"github.com/alnah/go-md2post/internal/fileutil"
)

// Sentinel errors for compilation runs.
var (
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrNoInput          = errors.New("no input file or directory given")
	ErrBatchFailed      = errors.New("some documents failed to compile")
)

// FileToCompile represents a single document to process.
type FileToCompile struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markup documents to compile. A file input
// must carry a markdown extension; a directory is walked recursively.
func discoverFiles(inputPath, outputDir string) ([]FileToCompile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToCompile{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToCompile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToCompile{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a document.
// With a directory input the source tree shape is mirrored under the
// output directory.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// validateMarkdownExtension checks that the file has a .md or
// .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// compileAll compiles every discovered file sequentially. A failed
// document is reported and skipped; the batch continues. Returns
// ErrBatchFailed when any document failed.
func compileAll(ctx context.Context, comp *md2post.Compiler, files []FileToCompile, out io.Writer) error {
	failed := 0
	for _, file := range files {
		if err := compileOne(ctx, comp, file, out); err != nil {
			failed++
			fmt.Fprintf(out, "error: %s: %v\n", file.InputPath, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(files))
	}
	return nil
}

// compileOne reads, compiles and writes a single document. The title
// substituted into the template is the source filename stem.
func compileOne(ctx context.Context, comp *md2post.Compiler, file FileToCompile, out io.Writer) error {
	fmt.Fprintf(out, "compiling: %s => %s\n", file.InputPath, file.OutputPath)

	source, err := os.ReadFile(file.InputPath) // #nosec G304 -- user-provided input path
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	result, err := comp.Compile(ctx, md2post.Input{
		Markup: string(source),
		Title:  fileutil.Stem(file.InputPath),
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(file.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(file.OutputPath, result.HTML, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
