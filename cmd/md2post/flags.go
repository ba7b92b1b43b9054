package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	config       string
	output       string
	imagesDir    string
	postTemplate string
	mathTemplate string
	latexCmd     string
	dvisvgmCmd   string
	timeout      string
	highlight    bool
	quiet        bool
	verbose      bool
	version      bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2post", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.imagesDir, "images-dir", "", "base directory for relative image URLs")
	fs.StringVar(&f.postTemplate, "post-template", "", "post template file path")
	fs.StringVar(&f.mathTemplate, "math-template", "", "math LaTeX template file path")
	fs.StringVar(&f.latexCmd, "latex-cmd", "", "typesetting command (default: latex)")
	fs.StringVar(&f.dvisvgmCmd, "dvisvgm-cmd", "", "DVI to SVG command (default: dvisvgm)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-expression typesetting timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code blocks")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-expression typesetting progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(fs.Output()) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the top-level usage text.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `md2post compiles markup dialect documents to HTML post pages.

Usage:
  md2post [flags] <input.md | input-dir>

Input may be a single document or a directory; directories are walked
recursively and every .md file is compiled. Math expressions require
latex and dvisvgm on PATH.

Flags:
  -c, --config string          config file name or path
  -o, --output string          output file or directory
      --images-dir string      base directory for relative image URLs
      --post-template string   post template file path
      --math-template string   math LaTeX template file path
      --latex-cmd string       typesetting command (default: latex)
      --dvisvgm-cmd string     DVI to SVG command (default: dvisvgm)
  -t, --timeout string         per-expression typesetting timeout
      --highlight              syntax-highlight fenced code blocks
  -q, --quiet                  only show errors
  -v, --verbose                show per-expression typesetting progress
      --version                print version and exit
`)
}
