// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the theme preview
// pages. Every page is paired with the base layout, which injects the
// server-rendered theme stylesheet and the bootstrap script into <head>.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"themeforge/internal/models"
	"themeforge/internal/themecss"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string               // Page title for <title> tag
	Section   string               // Active nav section ("preview", "tokens")
	CSS       string               // Theme stylesheet inlined into <head>
	Bootstrap string               // Bootstrap script inlined before the stylesheet
	Snapshot  *models.Snapshot     // Snapshot the CSS was rendered from
	Props     []themecss.Property  // Resolved custom properties
	Notice    string               // Optional banner, e.g. "serving fallback theme"
	Data      map[string]any       // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing every page template from the embedded
// filesystem, each paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
			// css and js mark generated output as trusted. The bootstrap
			// script is a constant; the stylesheet is checked by inlineCSS.
			"css": inlineCSS,
			"js":  func(s string) template.JS { return template.JS(s) },
			// cssVar renders var(name) for use inside style attributes,
			// where html/template rejects a bare "--" in interpolated values.
			"cssVar": cssVar,
			"groupTitle": func(group string) string {
				return strings.ToUpper(group[:1]) + group[1:]
			},
			"isColor": func(v string) bool {
				return strings.HasPrefix(v, "#") || strings.HasPrefix(v, "rgb") || strings.HasPrefix(v, "var(")
			},
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// inlineCSS marks a generated stylesheet as trusted for a <style> element.
// Generated CSS never contains '<', so a stylesheet that does is replaced
// by the fallback rather than allowed to end the element.
func inlineCSS(s string) template.CSS {
	if strings.Contains(s, "<") {
		slog.Error("inline stylesheet withheld: contains markup")
		return template.CSS(themecss.FallbackCSS)
	}
	return template.CSS(s)
}

// cssVar returns a var() reference for a custom property name. Names
// outside the custom property grammar render as "none".
func cssVar(name string) template.CSS {
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return "none"
	}
	for _, c := range name[2:] {
		if !(c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return "none"
		}
	}
	return template.CSS("var(" + name + ")")
}

// Page renders a full page through the base layout.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := executeTemplate(w, tmpl, "base.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
