package labsite

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/labsite/scaffold"
)

// newStarterSite generates the starter site into a temp dir and changes into it.
func newStarterSite(t *testing.T) *Site {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "lab")
	err := scaffold.Generate(dir, scaffold.Data{
		ProjectName: "lab",
		SiteName:    "Test Lab",
		SiteURL:     "https://lab.example.edu",
	}, nil)
	require.NoError(t, err)
	chdir(t, dir)

	cfg, err := LoadConfig(DefaultConfigFile)
	require.NoError(t, err)
	return New(cfg)
}

func readOutput(t *testing.T, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("output", filepath.FromSlash(rel)))
	require.NoError(t, err, "output %s", rel)
	return string(b)
}

func TestBuildStarterSite(t *testing.T) {
	site := newStarterSite(t)
	require.NoError(t, site.Build(context.Background()))

	for _, rel := range []string{
		"index.html", "404.html",
		"members.html", "publications.html", "projects.html", "lectures.html", "contact.html",
		"member/jane-doe.html", "member/mary-major.html",
		"project/open-retrieval.html",
		"publication/2025-dense-retrieval.html",
		"lecture/2025-fall-ir.html",
		"headline/2026-05-10-best-paper.html",
		"sitemap.xml", "feed.xml", "robots.txt", "theme/style.css",
	} {
		assert.FileExists(t, filepath.Join("output", filepath.FromSlash(rel)))
	}

	index := readOutput(t, "index.html")
	assert.Contains(t, index, "<title>Test Lab</title>")
	assert.Contains(t, index, "Best paper award")
	assert.Contains(t, index, `"@type":"ResearchOrganization"`)
	assert.Less(t, strings.Index(index, "Best paper award"), strings.Index(index, "Our lab website is live"))

	pubs := readOutput(t, "publications.html")
	assert.Contains(t, pubs, "<a href='/member/jane-doe.html'>Jane Doe</a>")
	assert.Contains(t, pubs, "A. Collaborator")
	assert.Less(t, strings.Index(pubs, "<h2>2025</h2>"), strings.Index(pubs, "<h2>2023</h2>"))

	members := readOutput(t, "members.html")
	assert.Contains(t, members, "<h2>Professor</h2>")
	assert.Contains(t, members, "Alumni")
	assert.Contains(t, members, "Mary Major")

	jane := readOutput(t, "member/jane-doe.html")
	assert.Contains(t, jane, "<title>Jane Doe | Test Lab</title>")
	assert.Contains(t, jane, "Dense Retrieval for Small Labs")
	assert.Contains(t, jane, "Query Expansion Revisited")
	assert.Contains(t, jane, `"@type":"Person"`)
	assert.NotContains(t, jane, "<h2>Teaching</h2>")

	john := readOutput(t, "member/john-roe.html")
	assert.Contains(t, john, "<h2>Teaching</h2>")

	contact := readOutput(t, "contact.html")
	assert.Contains(t, contact, "<strong>Room 301</strong>")

	sitemap := readOutput(t, "sitemap.xml")
	assert.Contains(t, sitemap, "<loc>https://lab.example.edu/</loc>")
	assert.Contains(t, sitemap, "<loc>https://lab.example.edu/member/jane-doe.html</loc>")
	assert.Contains(t, sitemap, "<priority>0.5</priority>")
	assert.NotContains(t, sitemap, "404.html")

	feed := readOutput(t, "feed.xml")
	assert.Contains(t, feed, "<link>https://lab.example.edu/headline/2026-05-10-best-paper.html</link>")
	assert.Contains(t, feed, "Our paper received a best paper award.")
}

func TestBuildDownscalesImages(t *testing.T) {
	site := newStarterSite(t)
	site.Config.MaxImageWidth = 100
	require.NoError(t, os.MkdirAll(filepath.Join("content", "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("content", "images", "group.png"), encodePNG(t, 400, 200), 0o644))

	require.NoError(t, site.Build(context.Background()))

	f, err := os.Open(filepath.Join("output", "images", "group.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestBuildMissingPageTemplate(t *testing.T) {
	site := newStarterSite(t)
	writeFiles(t, ".", map[string]string{
		"content/pages/gallery.md": "Title: Gallery\nSlug: gallery\nTemplate: gallery\n",
	})

	err := site.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"gallery.html"`)
}

func TestBuildCancelled(t *testing.T) {
	site := newStarterSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, site.Build(ctx), context.Canceled)
}

func TestBuildBadContent(t *testing.T) {
	site := newStarterSite(t)
	writeFiles(t, ".", map[string]string{
		"content/data/lectures/broken.md": "Title: Broken\nDate: 2024-01-01\nYear: 2024\n",
	})

	err := site.Build(context.Background())
	require.ErrorIs(t, err, ErrMissingKey)
	assert.NoFileExists(t, filepath.Join("output", "index.html"))
}

func TestLoadPages(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.md": "Title: About Us\n\nHello.\n",
		"a.md": "Title: Members\nSlug: members\nTemplate: members\n",
	})

	pages, err := loadPages(dir)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "about-us", pages[0].Slug)
	assert.Equal(t, "about-us.html", pages[0].URL)
	assert.Equal(t, "page", pages[0].Template)
	assert.Equal(t, "Hello.", pages[0].Body())
	assert.Equal(t, "members", pages[1].Template)
}
