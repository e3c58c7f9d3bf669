package labsite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a labsite build.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Labsite")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:8000")
	Description string `yaml:"description"` // Site description for feed and meta tags
	Author      string `yaml:"author"`

	Theme       string `yaml:"theme"`        // Theme directory (default "theme")
	ContentPath string `yaml:"content_path"` // Content root (default "content")
	OutputPath  string `yaml:"output_path"`  // Build output (default "output")

	RecentDataLimit int    `yaml:"recent_data_limit"` // Items shown in "recent" lists (default 5)
	RelativeURLs    bool   `yaml:"relative_urls"`
	MemberURLPrefix string `yaml:"member_url_prefix"` // Link prefix for linkify_members (default "/member/")

	StaticPaths       []string          `yaml:"static_paths"`
	ExtraPathMetadata map[string]string `yaml:"extra_path_metadata"` // source path → output path
	MaxImageWidth     int               `yaml:"max_image_width"`     // Wider images are downscaled (default 1600)

	Sitemap   SitemapConfig `yaml:"sitemap"`
	Orderings Orderings     `yaml:"orderings"`

	GoogleAnalyticsID string `yaml:"google_analytics_id"`
	GithubRibbon      bool   `yaml:"github_ribbon"`

	Addr string `yaml:"addr"` // Preview server listen address (default ":8000")
}

// SitemapConfig sets priority and change frequency per page class.
type SitemapConfig struct {
	Priorities  SitemapValues[float64] `yaml:"priorities"`
	ChangeFreqs SitemapValues[string]  `yaml:"changefreqs"`
}

// SitemapValues holds one setting for each sitemap page class.
type SitemapValues[T any] struct {
	Pages    T `yaml:"pages"`
	Articles T `yaml:"articles"`
	Indexes  T `yaml:"indexes"`
}

// Orderings lists the fixed category orders used when grouping content.
type Orderings struct {
	CurrentPositions []string `yaml:"current_positions"`
	AlumniPositions  []string `yaml:"alumni_positions"`
	VenueScopes      []string `yaml:"venue_scopes"`
	VenueTypes       []string `yaml:"venue_types"`
	Semesters        []string `yaml:"semesters"`
}

// DefaultOrderings returns the category orders of a typical lab site.
func DefaultOrderings() Orderings {
	return Orderings{
		CurrentPositions: []string{"Professor", "PhD Candidate", "PhD Student", "Master Student", "Intern"},
		AlumniPositions:  []string{"PhD", "Master"},
		VenueScopes:      []string{"Global", "Domestic"},
		VenueTypes:       []string{"Conference", "Journal"},
		Semesters:        []string{"Fall", "Summer", "Spring", "Winter"},
	}
}

func (o Orderings) withDefaults() Orderings {
	d := DefaultOrderings()
	if len(o.CurrentPositions) == 0 {
		o.CurrentPositions = d.CurrentPositions
	}
	if len(o.AlumniPositions) == 0 {
		o.AlumniPositions = d.AlumniPositions
	}
	if len(o.VenueScopes) == 0 {
		o.VenueScopes = d.VenueScopes
	}
	if len(o.VenueTypes) == 0 {
		o.VenueTypes = d.VenueTypes
	}
	if len(o.Semesters) == 0 {
		o.Semesters = d.Semesters
	}
	return o
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Labsite"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Theme == "" {
		c.Theme = "theme"
	}
	if c.ContentPath == "" {
		c.ContentPath = "content"
	}
	if c.OutputPath == "" {
		c.OutputPath = "output"
	}
	if c.RecentDataLimit == 0 {
		c.RecentDataLimit = 5
	}
	if c.MemberURLPrefix == "" {
		c.MemberURLPrefix = "/member/"
	}
	if c.StaticPaths == nil {
		c.StaticPaths = []string{"images/", "extra/favicon.ico", "extra/robots.txt"}
	}
	if c.ExtraPathMetadata == nil {
		c.ExtraPathMetadata = map[string]string{
			"extra/favicon.ico": "favicon.ico",
			"extra/robots.txt":  "robots.txt",
		}
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 1600
	}
	c.Sitemap.setDefaults()
	c.Orderings = c.Orderings.withDefaults()
	if c.Addr == "" {
		c.Addr = ":8000"
	}
}

func (s *SitemapConfig) setDefaults() {
	if s.Priorities == (SitemapValues[float64]{}) {
		s.Priorities = SitemapValues[float64]{Pages: 0.5, Articles: 0.5, Indexes: 0.5}
	}
	if s.ChangeFreqs == (SitemapValues[string]{}) {
		s.ChangeFreqs = SitemapValues[string]{Pages: "monthly", Articles: "monthly", Indexes: "monthly"}
	}
}

// DataPath is the directory holding the headline, member, project,
// publication and lecture subdirectories.
func (c SiteConfig) DataPath() string {
	return filepath.Join(c.ContentPath, "data")
}

// SiteURL turns a site-relative path into the URL templates should link to.
func (c SiteConfig) SiteURL(rel string) string {
	rel = strings.TrimLeft(rel, "/")
	if c.RelativeURLs {
		return "/" + rel
	}
	if rel == "" {
		return BuildURL(c.URL)
	}
	return BuildURL(c.URL, rel)
}

// LoadConfig reads YAML configuration from path, applies LABSITE_*
// environment overrides and fills defaults. A missing file is not an error
// when path is the default name; the defaults are used instead.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
	default:
		return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return SiteConfig{}, err
	}
	cfg.setDefaults()
	return cfg, nil
}

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "labsite.yaml"

func (c *SiteConfig) applyEnvOverrides() error {
	c.URL = EnvOr("LABSITE_URL", c.URL)
	c.OutputPath = EnvOr("LABSITE_OUTPUT", c.OutputPath)
	c.ContentPath = EnvOr("LABSITE_CONTENT", c.ContentPath)
	c.Addr = EnvOr("LABSITE_ADDR", c.Addr)
	if v := os.Getenv("LABSITE_RELATIVE_URLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LABSITE_RELATIVE_URLS: %w", err)
		}
		c.RelativeURLs = b
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
