// Package assets embeds the default post and math templates so the
// compiler works out of the box; config may point at files on disk to
// override either one.
package assets

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed templates/*
var templates embed.FS

// Template names accepted by LoadTemplate.
const (
	PostTemplateName = "post"
	MathTemplateName = "math"
)

// Sentinel errors for asset loading.
var ErrTemplateNotFound = errors.New("template not found")

// templateFiles maps template names to embedded file paths.
var templateFiles = map[string]string{
	PostTemplateName: "templates/post.html",
	MathTemplateName: "templates/math.tex",
}

// LoadTemplate returns the embedded template with the given name.
func LoadTemplate(name string) (string, error) {
	file, ok := templateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	content, err := templates.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// PostTemplate returns the embedded default post template.
func PostTemplate() string {
	return mustLoad(PostTemplateName)
}

// MathTemplate returns the embedded default LaTeX document template.
func MathTemplate() string {
	return mustLoad(MathTemplateName)
}

// mustLoad panics on a missing embedded template, which can only mean
// a broken build.
func mustLoad(name string) string {
	content, err := LoadTemplate(name)
	if err != nil {
		panic(fmt.Sprintf("assets: embedded template %q: %v", name, err))
	}
	return content
}
