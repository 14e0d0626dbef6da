package crfgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
)

// Default output name patterns. Patterns are pongo2 templates with the
// variables form, title and version.
const (
	DefaultNamePattern     = "{{ form }}_{{ version }}.pdf"
	DefaultCombinedPattern = "combined_forms_{{ version }}.pdf"
)

type namer struct {
	file     *pongo2.Template
	combined *pongo2.Template
}

func newNamer(filePattern, combinedPattern string) (*namer, error) {
	file, err := pongo2.FromString(filePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadName, filePattern, err)
	}
	combined, err := pongo2.FromString(combinedPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadName, combinedPattern, err)
	}
	return &namer{file: file, combined: combined}, nil
}

// File returns the file name of a form's document.
func (n *namer) File(form, version string) (string, error) {
	if strings.TrimSpace(form) == "" {
		return "", fmt.Errorf("%w: empty form name", ErrBadName)
	}
	return execName(n.file, pongo2.Context{
		"form":    pongo2.AsSafeValue(pathSafe(form)),
		"title":   pongo2.AsSafeValue(pathSafe(layout.FormTitle(form))),
		"version": pongo2.AsSafeValue(pathSafe(version)),
	})
}

// Combined returns the file name of the merged document.
func (n *namer) Combined(version string) (string, error) {
	return execName(n.combined, pongo2.Context{
		"version": pongo2.AsSafeValue(pathSafe(version)),
	})
}

func execName(tpl *pongo2.Template, ctx pongo2.Context) (string, error) {
	name, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadName, err)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return name, nil
}

// pathSafe replaces path separators so a value cannot leave the output
// directory.
func pathSafe(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(s))
}
