package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Heading 2", `<h2 id="heading-2">Heading 2</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) failed: %v", tt.input, err)
		}
		if strings.TrimSpace(string(got)) != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"use `go test` here", "<code>go test</code>"},
		{"[lab](https://example.com)", `<a href="https://example.com">lab</a>`},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) failed: %v", tt.input, err)
		}
		if !strings.Contains(string(got), tt.contains) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
		}
	}
}

func TestRenderTable(t *testing.T) {
	input := "| a | b |\n|---|---|\n| 1 | 2 |"
	got, err := Render(input)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("table output %q missing %q", got, want)
		}
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	got, err := Render("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("raw HTML should be omitted: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("- item 1\n- item 2").Render(context.Background(), &buf); err != nil {
		t.Fatalf("component render failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "<ul>") || !strings.Contains(got, "<li>item 2</li>") {
		t.Errorf("component output = %q, want a list", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/member/kim.html", "/member/kim.html"},
		{"#top", "#top"},
		{"https://example.com/a?b=1&c=2", "https://example.com/a?b=1&amp;c=2"},
		{"mailto:lab@example.com", "mailto:lab@example.com"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
