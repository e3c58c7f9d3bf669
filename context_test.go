package labsite

import (
	"bytes"
	"context"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkifyMembers(t *testing.T) {
	db := loadLabDB(t)
	cfg := SiteConfig{}
	cfg.setDefaults()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Alice Kim, Outsider", "<a href='/member/alice.html'>Alice Kim</a>, Outsider"},
		{"slice", []string{"Bob Lee", " Carol Park "}, "<a href='/member/bob.html'>Bob Lee</a>, <a href='/member/carol.html'>Carol Park</a>"},
		{"escaped", "A <b>&</b> B", "A &lt;b&gt;&amp;&lt;/b&gt; B"},
		{"empty", "", ""},
		{"unsupported", 7, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, db.LinkifyMembers(cfg, tt.in).Render(context.Background(), &buf))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, template.HTML(tt.want), db.LinkifyMembersHTML(cfg, tt.in))
		})
	}
}

func TestLinkifyMembersPrefix(t *testing.T) {
	db := loadLabDB(t)
	cfg := SiteConfig{MemberURLPrefix: "/people/"}
	cfg.setDefaults()

	assert.Equal(t, template.HTML("<a href='/people/dave.html'>Dave Cho</a>"), db.LinkifyMembersHTML(cfg, "Dave Cho"))
}

func TestContext(t *testing.T) {
	db := loadLabDB(t)
	cfg := SiteConfig{Name: "IR Lab", URL: "https://lab.example.edu/"}
	cfg.setDefaults()

	ctx := db.Context(cfg)
	assert.Equal(t, "IR Lab", ctx["SITENAME"])
	assert.Equal(t, "https://lab.example.edu", ctx["SITEURL"])
	assert.Equal(t, 5, ctx["RECENT_DATA_LIMIT"])
	assert.Equal(t, db.Publications, ctx["all_publications"])
	assert.Equal(t, db.CurrentMembers, ctx["verbose_current_member_data"])
	assert.Equal(t, db.LecturesByYear, ctx["verbose_lecture_data"])

	for _, key := range []string{
		"all_headlines", "all_members", "all_projects", "all_lectures",
		"verbose_alumni_member_data", "verbose_publication_data",
	} {
		assert.Contains(t, ctx, key)
	}

	byMember, ok := ctx["get_publications_by_member_title"].(func(string) []*Publication)
	require.True(t, ok)
	assert.Len(t, byMember("Alice Kim"), 2)
}

func TestFuncMapInTemplate(t *testing.T) {
	db := loadLabDB(t)
	cfg := SiteConfig{URL: "https://lab.example.edu"}
	cfg.setDefaults()

	tmpl := template.Must(template.New("t").Funcs(db.FuncMap(cfg)).Parse(
		`{{range get_publications_by_project_slug "search"}}{{.Slug}}:{{linkify_members .Authors}};{{end}}` +
			`|{{range limit 1 .}}{{.Title}}{{end}}` +
			`|{{url "member/alice.html"}}` +
			`|{{date (index . 0).Date "2006"}}`,
	))

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, db.Headlines))
	assert.Equal(t,
		"p2:<a href='/member/alice.html'>Alice Kim</a>, <a href='/member/alice.html'>Alice Kim</a>;"+
			"p1:<a href='/member/bob.html'>Bob Lee</a>, <a href='/member/alice.html'>Alice Kim</a>, Outsider;"+
			"|Paper accepted"+
			"|https://lab.example.edu/member/alice.html"+
			"|2025",
		buf.String())
}
