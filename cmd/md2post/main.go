package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	md2post "github.com/alnah/go-md2post"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is
	// invalid, in which case Go runtime defaults apply and the program
	// continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses flags and config, builds the compiler, and compiles every
// discovered document.
func run(args []string, stdout, stderr io.Writer) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintf(stdout, "md2post %s\n", Version)
		return nil
	}

	cfg := DefaultConfig()
	if flags.config != "" {
		cfg, err = LoadConfig(flags.config)
		if err != nil {
			return err
		}
	}

	inputPath := ""
	switch {
	case len(positional) > 0:
		inputPath = positional[0]
	case cfg.Input.DefaultDir != "":
		inputPath = cfg.Input.DefaultDir
	default:
		return ErrNoInput
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	opts, err := buildOptions(flags, cfg, stderr)
	if err != nil {
		return err
	}

	comp, err := md2post.NewCompiler(opts...)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return err
	}

	progress := stdout
	if flags.quiet {
		progress = io.Discard
	}
	return compileAll(context.Background(), comp, files, progress)
}

// buildOptions merges config file settings and flags into compiler
// options; flags win over the config file.
func buildOptions(flags *cliFlags, cfg *Config, stderr io.Writer) ([]md2post.Option, error) {
	var opts []md2post.Option

	imagesDir := cfg.Images.Dir
	if flags.imagesDir != "" {
		imagesDir = flags.imagesDir
	}
	if imagesDir != "" {
		opts = append(opts, md2post.WithImagesDir(imagesDir))
	}

	postPath := cfg.Templates.Post
	if flags.postTemplate != "" {
		postPath = flags.postTemplate
	}
	if postPath != "" {
		tmpl, err := os.ReadFile(postPath) // #nosec G304 -- template path is user-provided
		if err != nil {
			return nil, fmt.Errorf("reading post template: %w", err)
		}
		opts = append(opts, md2post.WithPostTemplate(string(tmpl)))
	}

	mathPath := cfg.Templates.Math
	if flags.mathTemplate != "" {
		mathPath = flags.mathTemplate
	}
	if mathPath != "" {
		tmpl, err := os.ReadFile(mathPath) // #nosec G304 -- template path is user-provided
		if err != nil {
			return nil, fmt.Errorf("reading math template: %w", err)
		}
		opts = append(opts, md2post.WithMathTemplate(string(tmpl)))
	}

	latexCmd := cfg.Commands.Latex
	if flags.latexCmd != "" {
		latexCmd = flags.latexCmd
	}
	dvisvgmCmd := cfg.Commands.Dvisvgm
	if flags.dvisvgmCmd != "" {
		dvisvgmCmd = flags.dvisvgmCmd
	}
	if latexCmd != "" || dvisvgmCmd != "" {
		opts = append(opts, md2post.WithCommands(latexCmd, dvisvgmCmd))
	}

	timeout := cfg.Render.Timeout
	if flags.timeout != "" {
		timeout = flags.timeout
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout %q", timeout)
		}
		opts = append(opts, md2post.WithTimeout(d))
	}

	if flags.highlight || cfg.Render.Highlight {
		opts = append(opts, md2post.WithHighlighting())
	}

	if flags.verbose {
		opts = append(opts, md2post.WithProgress(stderr))
	}

	return opts, nil
}
