// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view renders the server-side HTML pages of the web front-end.

Templates and static assets (stylesheet, editor toolbar, live search script)
are embedded in the binary. Each page template is parsed together with the
shared layout and partials into its own set, so pages can all define a
"content" block without clashing.

Layout:

  - templates/layout.html: the "layout" skeleton (navigation, notices).
  - templates/partials/*.html: reusable blocks (pager, book cards).
  - templates/pages/*.html: one file per page, defining "content".
*/
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/flash"
)

//go:embed templates static
var files embed.FS

// Nav is the navigation state shown on every page.
type Nav struct {
	Authenticated bool
	IsAdmin       bool
	Username      string
	Active        string
}

// Page is what every page template receives.
type Page struct {
	Title string
	Nav   Nav
	Flash *flash.Message
	Data  any
}

// Confirmation is the data of the two-step confirmation page.
type Confirmation struct {
	Title   string
	Message string
	Action  string
	Cancel  string
	Hidden  map[string]string
}

// Renderer executes the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template with the shared layout and partials.
func NewRenderer() (*Renderer, error) {
	pageFiles, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: list pages: %w", err)
	}

	renderer := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}

	for _, file := range pageFiles {
		name := strings.TrimSuffix(path.Base(file), ".html")

		parsed, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/partials/*.html",
			file,
		)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}

		renderer.pages[name] = parsed
	}

	return renderer, nil
}

// Render writes the full page called name.
func (renderer *Renderer) Render(writer io.Writer, name string, page Page) error {
	return renderer.Fragment(writer, name, "layout", page)
}

// Fragment executes a single named block from the set of page name.
func (renderer *Renderer) Fragment(writer io.Writer, name, block string, data any) error {
	set, ok := renderer.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return set.ExecuteTemplate(writer, block, data)
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	assets, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets)))
}
