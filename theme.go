package labsite

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"
)

// baseLayout is executed for every page when the theme provides it; page
// templates then only define the blocks it references.
const baseLayout = "base.html"

// Theme is a set of html/template page templates sharing one base layout
// and the partials under templates/partials.
type Theme struct {
	Dir   string
	pages map[string]*template.Template
}

// LoadTheme parses dir/templates. Every *.html file directly in it except
// base.html becomes a page template named by its file name.
func LoadTheme(dir string, funcs template.FuncMap) (*Theme, error) {
	tmplDir := filepath.Join(dir, "templates")
	shared := template.New("").Funcs(funcs)

	base := filepath.Join(tmplDir, baseLayout)
	hasBase := fileExists(base)
	if hasBase {
		if _, err := shared.ParseFiles(base); err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
	}
	partials, err := filepath.Glob(filepath.Join(tmplDir, "partials", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(partials) > 0 {
		if _, err := shared.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("parse partials: %w", err)
		}
	}

	files, err := filepath.Glob(filepath.Join(tmplDir, "*.html"))
	if err != nil {
		return nil, err
	}
	t := &Theme{Dir: dir, pages: make(map[string]*template.Template)}
	for _, f := range files {
		name := filepath.Base(f)
		if name == baseLayout {
			continue
		}
		clone, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFiles(f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		entry := name
		if hasBase {
			entry = baseLayout
		}
		t.pages[name] = clone.Lookup(entry)
	}
	if len(t.pages) == 0 {
		return nil, fmt.Errorf("theme %s: no page templates in %s", dir, tmplDir)
	}
	return t, nil
}

// Has reports whether the theme defines the page template name.
func (t *Theme) Has(name string) bool {
	_, ok := t.pages[name]
	return ok
}

// Names returns the page template names in sorted order.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.pages))
	for n := range t.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render executes the page template name with data.
func (t *Theme) Render(w io.Writer, name string, data map[string]any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("theme %s: no template %q", t.Dir, name)
	}
	return tmpl.Execute(w, data)
}

// StaticDir is where the theme keeps its own CSS, scripts and images.
func (t *Theme) StaticDir() string {
	return filepath.Join(t.Dir, "static")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// formatDate formats t with layout (default "2006-01-02"); zero times give "".
func formatDate(t time.Time, layout ...string) string {
	if t.IsZero() {
		return ""
	}
	l := DateLayout
	if len(layout) > 0 && strings.TrimSpace(layout[0]) != "" {
		l = layout[0]
	}
	return t.Format(l)
}

// limit returns at most n leading elements of a slice.
func limit(n int, items any) (any, error) {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("limit: %T is not a slice", items)
	}
	if n < 0 {
		n = 0
	}
	if n > v.Len() {
		n = v.Len()
	}
	return v.Slice(0, n).Interface(), nil
}
