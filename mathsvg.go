package md2post

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MathRenderer renders a LaTeX fragment to SVG text. Display math is
// wrapped in \[...\], inline math in $...$.
type MathRenderer interface {
	RenderSVG(ctx context.Context, fragment string, display bool) (string, error)
}

// CommandRunner abstracts external command execution to enable testing
// without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := execCommand(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// MathPipeline renders math by invoking an external LaTeX typesetter
// and a DVI-to-SVG converter. Each invocation uses a fresh temporary
// directory, so repeated invocations never collide on filenames.
type MathPipeline struct {
	Template string        // LaTeX document template with a {{content}} placeholder
	Latex    string        // typesetting command, default "latex"
	Dvisvgm  string        // conversion command, default "dvisvgm"
	Timeout  time.Duration // per external call, default 30s
	Runner   CommandRunner // default ExecRunner
	Progress io.Writer     // optional per-expression progress lines
}

// NewMathPipeline creates a pipeline around the given LaTeX document
// template. Returns ErrMissingContentPlaceholder when the template has
// nowhere to substitute the math fragment.
func NewMathPipeline(template string) (*MathPipeline, error) {
	if !strings.Contains(template, "{{content}}") {
		return nil, ErrMissingContentPlaceholder
	}
	return &MathPipeline{Template: template}, nil
}

func (p *MathPipeline) latexCmd() string {
	if p.Latex != "" {
		return p.Latex
	}
	return "latex"
}

func (p *MathPipeline) dvisvgmCmd() string {
	if p.Dvisvgm != "" {
		return p.Dvisvgm
	}
	return "dvisvgm"
}

func (p *MathPipeline) runner() CommandRunner {
	if p.Runner != nil {
		return p.Runner
	}
	return ExecRunner{}
}

func (p *MathPipeline) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return defaultTimeout
}

// RenderSVG writes the wrapped fragment into the template, typesets it
// and converts the resulting DVI to SVG. Typeset failures carry the
// typesetter's captured stdout as the diagnostic; callers never retry.
func (p *MathPipeline) RenderSVG(ctx context.Context, fragment string, display bool) (string, error) {
	dir, err := os.MkdirTemp("", "md2post-math-")
	if err != nil {
		return "", fmt.Errorf("creating math working directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	inner := "$" + fragment + "$"
	if display {
		inner = `\[` + fragment + `\]`
	}
	doc := strings.ReplaceAll(p.Template, "{{content}}", inner)

	texPath := filepath.Join(dir, "math.tex")
	if err := os.WriteFile(texPath, []byte(doc), 0o600); err != nil {
		return "", fmt.Errorf("writing math source: %w", err)
	}

	stdout, err := p.runBounded(ctx, p.latexCmd(),
		"-interaction=nonstopmode", "-halt-on-error", "-output-directory", dir, texPath)
	if err != nil {
		if errors.Is(err, ErrTypesetTimeout) {
			p.progressf("typesetting: %s... TIMEOUT\n", oneLine(fragment))
			return "", err
		}
		p.progressf("typesetting: %s... ERR\n%s", oneLine(fragment), stdout)
		return "", fmt.Errorf("%w: %s", ErrTypeset, stdout)
	}
	p.progressf("typesetting: %s... OK\n", oneLine(fragment))

	dviPath := filepath.Join(dir, "math.dvi")
	if _, err := os.Stat(dviPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingDVI, dviPath)
	}

	svg, err := p.runBounded(ctx, p.dvisvgmCmd(), "--no-fonts", "--exact", "--stdout", dviPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSVGConversion, err)
	}
	return svg, nil
}

// runBounded runs one external command under the pipeline's timeout
// and returns its captured stdout. A deadline hit maps to
// ErrTypesetTimeout so a hung typesetter cannot stall compilation.
func (p *MathPipeline) runBounded(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	stdout, _, err := p.runner().Run(ctx, name, args...)
	if err != nil {
		if ctx.Err() != nil {
			return stdout, fmt.Errorf("%w: %s after %s", ErrTypesetTimeout, name, p.timeout())
		}
		return stdout, err
	}
	return stdout, nil
}

func (p *MathPipeline) progressf(format string, args ...any) {
	if p.Progress != nil {
		fmt.Fprintf(p.Progress, format, args...)
	}
}

// oneLine flattens a math fragment for progress output.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
