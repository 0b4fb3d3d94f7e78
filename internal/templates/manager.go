// Package templates provides a template manager with dynamic reload support.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"sync"
)

const (
	layoutPath   = "layouts/base.html"
	partialsGlob = "partials/*.html"
	pagesDir     = "pages"
)

// Manager handles template loading and caching
type Manager struct {
	fsys    fs.FS
	debug   bool
	cache   map[string]*template.Template
	mu      sync.RWMutex
	funcMap template.FuncMap
}

// NewManager creates a new template manager over fsys.
// If debug is true, templates are reloaded on every render.
// If debug is false, templates are parsed once and cached.
// extra funcs are merged over the built-in helpers.
func NewManager(fsys fs.FS, debug bool, extra template.FuncMap) (*Manager, error) {
	if _, err := fs.Stat(fsys, layoutPath); err != nil {
		return nil, fmt.Errorf("template layout missing: %w", err)
	}

	funcs := baseFuncs()
	for name, fn := range extra {
		funcs[name] = fn
	}

	m := &Manager{
		fsys:    fsys,
		debug:   debug,
		cache:   make(map[string]*template.Template),
		funcMap: funcs,
	}

	// Parse everything up front even in debug mode so a broken template
	// fails at startup rather than on first request.
	if err := m.loadTemplates(); err != nil {
		return nil, err
	}

	return m, nil
}

// loadTemplates parses every page under pages/ with the layout and partials
func (m *Manager) loadTemplates() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fs.WalkDir(m.fsys, pagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		tmpl, err := m.parse(p)
		if err != nil {
			return err
		}
		m.cache[p] = tmpl
		return nil
	})
}

// parse builds layout + partials + page into one template set rooted at "base"
func (m *Manager) parse(name string) (*template.Template, error) {
	layoutContent, err := fs.ReadFile(m.fsys, layoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	tmpl := template.New("base").Funcs(m.funcMap)
	if _, err := tmpl.Parse(string(layoutContent)); err != nil {
		return nil, fmt.Errorf("failed to parse layout for %s: %w", name, err)
	}

	partials, err := fs.Glob(m.fsys, partialsGlob)
	if err != nil {
		return nil, err
	}
	sort.Strings(partials)
	for _, p := range partials {
		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read partial %s: %w", p, err)
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse partial %s: %w", p, err)
		}
	}

	pageContent, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	if _, err := tmpl.Parse(string(pageContent)); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tmpl, nil
}

// Render renders a page template with the given data
func (m *Manager) Render(w io.Writer, name string, data interface{}) error {
	if m.debug {
		tmpl, err := m.parse(name)
		if err != nil {
			return fmt.Errorf("failed to reload template: %w", err)
		}
		m.mu.Lock()
		m.cache[name] = tmpl
		m.mu.Unlock()
	}

	m.mu.RLock()
	tmpl, ok := m.cache[name]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}
