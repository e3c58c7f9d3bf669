// Package markdown renders content bodies to HTML, both as html/template
// values and as templ components.
package markdown

import (
	"bytes"
	"context"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithXHTML(),
	),
)

// Markdown returns a templ.Component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Convert(w, src)
	})
}

// Convert writes the HTML form of src to w. Raw HTML in src is dropped.
func Convert(w io.Writer, src string) error {
	return md.Convert([]byte(src), w)
}

// Render returns the HTML form of src for use in html/template.
func Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Convert(&buf, src); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
// Site-relative paths and fragments pass; absolute URLs must be http(s),
// mailto or tel. Anything else yields "".
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
