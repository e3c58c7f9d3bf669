// Package labsite is a static site generator for academic lab websites.
// It reads headline, member, project, publication and lecture metadata
// files, cross-links them, groups them for presentation and renders the
// result through an html/template theme.
//
// Themes receive the aggregated collections under fixed names (see
// DB.Context) and can call the linkify_members filter and the lookup
// functions registered by DB.FuncMap.
package labsite

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Page is a standalone page under content/pages, such as the publication
// list or the contact page. Template names the theme template it uses.
type Page struct {
	Entry
	Template string
}

// Site is one build of a lab website. It wires together the configuration,
// the content database, the theme and the output directory.
type Site struct {
	Config SiteConfig
	DB     *DB
	Theme  *Theme
	Pages  []*Page

	log     *zap.Logger
	written []sitemapEntry
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithSiteLogger sets the logger the build reports to (default: no-op).
func WithSiteLogger(l *zap.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Site for cfg. Unset configuration fields get defaults.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()
	s := &Site{Config: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the content database, the pages and the theme.
func (s *Site) Load() error {
	db, err := Load(s.Config.DataPath(), WithOrderings(s.Config.Orderings), WithLogger(s.log))
	if err != nil {
		return fmt.Errorf("labsite: %w", err)
	}
	s.DB = db

	pages, err := loadPages(filepath.Join(s.Config.ContentPath, "pages"))
	if err != nil {
		return fmt.Errorf("labsite: load pages: %w", err)
	}
	s.Pages = pages

	theme, err := LoadTheme(s.Config.Theme, db.FuncMap(s.Config))
	if err != nil {
		return fmt.Errorf("labsite: %w", err)
	}
	s.Theme = theme
	return nil
}

// Build loads everything and writes the site to the output directory.
// ctx is checked between pages.
func (s *Site) Build(ctx context.Context) error {
	if err := s.Load(); err != nil {
		return err
	}
	out := s.Config.OutputPath
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("labsite: create output: %w", err)
	}
	s.written = nil

	base := s.DB.Context(s.Config)

	for _, name := range []string{"index.html", "404.html"} {
		if !s.Theme.Has(name) {
			continue
		}
		class := sitemapIndex
		if name == "404.html" {
			class = ""
		}
		if err := s.renderTo(name, name, maps.Clone(base), nil, class); err != nil {
			return err
		}
	}

	for _, p := range s.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmpl := p.Template + ".html"
		if !s.Theme.Has(tmpl) {
			return fmt.Errorf("labsite: page %s: theme has no template %q", p.Meta.Path, tmpl)
		}
		data := maps.Clone(base)
		data["page"] = p
		if err := s.renderTo(tmpl, p.URL, data, &p.Entry, sitemapPage); err != nil {
			return err
		}
	}

	for _, a := range s.articles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmpl := a.entry.Kind + ".html"
		if !s.Theme.Has(tmpl) {
			tmpl = "article.html"
		}
		if !s.Theme.Has(tmpl) {
			s.log.Debug("no template for article", zap.String("kind", a.entry.Kind), zap.String("slug", a.entry.Slug))
			continue
		}
		data := maps.Clone(base)
		data["article"] = a.value
		data[a.entry.Kind] = a.value
		if err := s.renderTo(tmpl, a.entry.URL, data, a.entry, sitemapArticle); err != nil {
			return err
		}
	}

	if err := s.writeFile("sitemap.xml", func(buf *bytes.Buffer) error {
		return writeSitemap(buf, s.Config, s.written)
	}); err != nil {
		return err
	}
	if err := s.writeFile("feed.xml", func(buf *bytes.Buffer) error {
		return writeFeed(buf, s.Config, s.DB.Headlines)
	}); err != nil {
		return err
	}
	if err := s.copyStatic(); err != nil {
		return fmt.Errorf("labsite: static: %w", err)
	}

	s.log.Info("site built",
		zap.String("output", out),
		zap.Int("pages", len(s.written)),
	)
	return nil
}

type article struct {
	entry *Entry
	value any
}

// articles lists every entity that gets its own page.
func (s *Site) articles() []article {
	var out []article
	for _, h := range s.DB.Headlines {
		out = append(out, article{&h.Entry, h})
	}
	for _, m := range s.DB.Members {
		out = append(out, article{&m.Entry, m})
	}
	for _, p := range s.DB.Projects {
		out = append(out, article{&p.Entry, p})
	}
	for _, p := range s.DB.Publications {
		out = append(out, article{&p.Entry, p})
	}
	for _, l := range s.DB.Lectures {
		out = append(out, article{&l.Entry, l})
	}
	return out
}

// renderTo renders a theme template to rel under the output directory and
// records it for the sitemap unless class is empty.
func (s *Site) renderTo(tmpl, rel string, data map[string]any, e *Entry, class string) error {
	data["output_file"] = rel
	err := s.writeFile(rel, func(buf *bytes.Buffer) error {
		return s.Theme.Render(buf, tmpl, data)
	})
	if err != nil {
		return err
	}
	if class != "" {
		s.written = append(s.written, sitemapEntry{rel: rel, entry: e, class: class})
	}
	s.log.Debug("rendered page", zap.String("template", tmpl), zap.String("path", rel))
	return nil
}

// writeFile renders into memory first so a failing template never leaves a
// truncated file behind.
func (s *Site) writeFile(rel string, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("labsite: render %s: %w", rel, err)
	}
	dst := filepath.Join(s.Config.OutputPath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

// loadPages reads content/pages/*.md. A page's template defaults to "page".
func loadPages(dir string) ([]*Page, error) {
	metas, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	pages := make([]*Page, 0, len(metas))
	for _, m := range metas {
		e, err := newEntry("page", m)
		if err != nil {
			return nil, err
		}
		e.URL = e.Slug + ".html"
		tmpl := m.Get("template")
		if tmpl == "" {
			tmpl = "page"
		}
		pages = append(pages, &Page{Entry: e, Template: tmpl})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Slug < pages[j].Slug
	})
	return pages, nil
}
