// Package web renders the admin console pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed "templates"
var FS embed.FS

const layoutFile = "templates/layout.tmpl"

// Nav is the dashboard menu, in display order.
var Nav = []NavItem{
	{Path: "/products", Label: "Products"},
	{Path: "/orders", Label: "Orders"},
	{Path: "/shipping", Label: "Shipping"},
	{Path: "/discounts", Label: "Discounts"},
	{Path: "/care", Label: "Product Care"},
	{Path: "/categories", Label: "Categories"},
}

type NavItem struct {
	Path  string
	Label string
}

// Page is what every template receives.
type Page struct {
	Title   string
	Active  string
	Nav     []NavItem
	Message string
	Data    any
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template against the shared layout. extra adds
// or overrides template functions.
func New(extra template.FuncMap) (*Renderer, error) {
	funcs := Funcs()
	for k, v := range extra {
		funcs[k] = v
	}

	files, err := fs.Glob(FS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".tmpl")
		t, err := template.New(name).Funcs(funcs).ParseFS(FS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes page name into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if p.Nav == nil {
		p.Nav = Nav
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Funcs are the helpers every template can use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"thumb": func(u string) string { return u },
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) + " EGP" },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02 Jan 2006, 15:04")
		},
		"tone": MessageTone,
		"join": strings.Join,
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
		"contains": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
	}
}

// MessageTone picks the banner colour for a page message.
func MessageTone(msg string) string {
	switch {
	case msg == "":
		return ""
	case strings.HasPrefix(msg, "Error"), strings.HasPrefix(msg, "Network"), strings.HasPrefix(msg, "Please"),
		strings.HasPrefix(msg, "Maximum"):
		return "error"
	case strings.HasPrefix(msg, "Success"), strings.Contains(msg, "successfully"), strings.HasSuffix(msg, "updated."):
		return "success"
	}
	return "info"
}
