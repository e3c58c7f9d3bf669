package labsite

import (
	"encoding/xml"
	"io"
	"strconv"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemap page classes, matching the keys of SitemapConfig.
const (
	sitemapIndex   = "indexes"
	sitemapPage    = "pages"
	sitemapArticle = "articles"
)

// sitemapEntry records one written page for the sitemap.
type sitemapEntry struct {
	rel   string
	entry *Entry // nil for index pages
	class string
}

func writeSitemap(w io.Writer, cfg SiteConfig, entries []sitemapEntry) error {
	urls := make([]sitemapURL, 0, len(entries))
	for _, e := range entries {
		u := sitemapURL{Loc: BuildURL(cfg.URL, e.rel)}
		if e.rel == "" || e.rel == "index.html" {
			u.Loc = BuildURL(cfg.URL)
		}
		if e.entry != nil && !e.entry.Date.IsZero() {
			u.LastMod = e.entry.Date.Format(DateLayout)
		}
		switch e.class {
		case sitemapIndex:
			u.ChangeFreq = cfg.Sitemap.ChangeFreqs.Indexes
			u.Priority = formatPriority(cfg.Sitemap.Priorities.Indexes)
		case sitemapPage:
			u.ChangeFreq = cfg.Sitemap.ChangeFreqs.Pages
			u.Priority = formatPriority(cfg.Sitemap.Priorities.Pages)
		default:
			u.ChangeFreq = cfg.Sitemap.ChangeFreqs.Articles
			u.Priority = formatPriority(cfg.Sitemap.Priorities.Articles)
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
