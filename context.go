package labsite

import (
	"context"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/labsite/markdown"
)

// Context returns the values every page template receives, keyed by the
// names themes refer to.
func (db *DB) Context(cfg SiteConfig) map[string]any {
	return map[string]any{
		"SITENAME":            cfg.Name,
		"SITEURL":             strings.TrimRight(cfg.SiteURL(""), "/"),
		"SITEDESCRIPTION":     cfg.Description,
		"AUTHOR":              cfg.Author,
		"GOOGLE_ANALYTICS_ID": cfg.GoogleAnalyticsID,
		"GITHUB_RIBBON":       cfg.GithubRibbon,
		"RECENT_DATA_LIMIT":   cfg.RecentDataLimit,

		"all_headlines":    db.Headlines,
		"all_members":      db.Members,
		"all_projects":     db.Projects,
		"all_publications": db.Publications,
		"all_lectures":     db.Lectures,

		"verbose_current_member_data": db.CurrentMembers,
		"verbose_alumni_member_data":  db.AlumniMembers,
		"verbose_publication_data":    db.PublicationsByYear,
		"verbose_lecture_data":        db.LecturesByYear,

		"get_publications_by_member_title": db.PublicationsByMember,
		"get_publications_by_project_slug": db.PublicationsByProject,
		"get_lectures_by_member_title":     db.LecturesByMember,
	}
}

// FuncMap returns the template functions and filters themes may call.
func (db *DB) FuncMap(cfg SiteConfig) template.FuncMap {
	return template.FuncMap{
		"linkify_members": func(titles any) template.HTML {
			return db.LinkifyMembersHTML(cfg, titles)
		},
		"get_publications_by_member_title": db.PublicationsByMember,
		"get_publications_by_project_slug": db.PublicationsByProject,
		"get_lectures_by_member_title":     db.LecturesByMember,
		"markdown":                         markdown.Render,
		"url":                              cfg.SiteURL,
		"date":                             formatDate,
		"limit":                            limit,
		"organization_jsonld": func() template.JS {
			return template.JS(OrganizationJsonLD(cfg))
		},
		"person_jsonld": func(m *Member) template.JS {
			return template.JS(PersonJsonLD(m, cfg))
		},
	}
}

// LinkifyMembers renders member titles as links to their pages, joined by
// commas. Titles that name no member are rendered as plain text.
func (db *DB) LinkifyMembers(cfg SiteConfig, titles any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		anchors := make([]string, 0)
		for _, title := range ParseList(titles) {
			escaped := html.EscapeString(title)
			m, ok := db.Member(title)
			if !ok {
				anchors = append(anchors, escaped)
				continue
			}
			href := markdown.SafeURL(cfg.MemberURLPrefix + m.Slug + ".html")
			if href == "" {
				anchors = append(anchors, escaped)
				continue
			}
			anchors = append(anchors, "<a href='"+href+"'>"+escaped+"</a>")
		}
		_, err := io.WriteString(w, strings.Join(anchors, ", "))
		return err
	})
}

// LinkifyMembersHTML is LinkifyMembers for html/template.
func (db *DB) LinkifyMembersHTML(cfg SiteConfig, titles any) template.HTML {
	s, err := templ.ToGoHTML(context.Background(), db.LinkifyMembers(cfg, titles))
	if err != nil {
		return template.HTML(html.EscapeString(strings.Join(ParseList(titles), ", ")))
	}
	return s
}
