package labsite

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DB holds every content collection of one build together with the
// cross-reference indexes. It is built once by Load and read-only afterwards.
type DB struct {
	Headlines    []*Headline
	Members      []*Member
	Projects     []*Project
	Publications []*Publication
	Lectures     []*Lecture

	CurrentMembers     []MemberGroup
	AlumniMembers      []MemberGroup
	PublicationsByYear []PublicationYear
	LecturesByYear     []LectureYear

	titleToMember map[string]*Member
	slugToProject map[string]*Project

	order Orderings
	log   *zap.Logger
}

// LoadOption configures Load.
type LoadOption func(*DB)

// WithOrderings overrides the category orderings used for grouping.
func WithOrderings(o Orderings) LoadOption {
	return func(db *DB) {
		db.order = o.withDefaults()
	}
}

// WithLogger sets the logger Load reports progress to.
func WithLogger(l *zap.Logger) LoadOption {
	return func(db *DB) {
		if l != nil {
			db.log = l
		}
	}
}

// Load reads every kind of content under root and cross-links it.
// Publications and lectures are loaded last because they resolve
// references against the member and project indexes.
func Load(root string, opts ...LoadOption) (*DB, error) {
	db := &DB{
		titleToMember: make(map[string]*Member),
		slugToProject: make(map[string]*Project),
		order:         DefaultOrderings(),
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}

	steps := []struct {
		kind string
		load func(string) error
	}{
		{KindHeadline, db.loadHeadlines},
		{KindMember, db.loadMembers},
		{KindProject, db.loadProjects},
		{KindPublication, db.loadPublications},
		{KindLecture, db.loadLectures},
	}
	for _, step := range steps {
		if err := step.load(filepath.Join(root, dataDirs[step.kind])); err != nil {
			return nil, fmt.Errorf("load %s: %w", dataDirs[step.kind], err)
		}
	}

	db.log.Debug("loaded data",
		zap.String("root", root),
		zap.Int("headlines", len(db.Headlines)),
		zap.Int("members", len(db.Members)),
		zap.Int("projects", len(db.Projects)),
		zap.Int("publications", len(db.Publications)),
		zap.Int("lectures", len(db.Lectures)),
	)
	return db, nil
}

// readDir parses every *.md file in dir in lexical order.
// A missing directory yields no files.
func readDir(dir string) ([]Metadata, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	out := make([]Metadata, 0, len(paths))
	for _, p := range paths {
		m, err := ParseMetadataFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func newEntry(kind string, m Metadata) (Entry, error) {
	title := m.Get("title")
	slug := m.Get("slug")
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return Entry{}, fmt.Errorf("%s: %w %q", m.Path, ErrMissingKey, "slug")
	}
	category := m.Get("category")
	if category == "" {
		category = kind
	}
	return Entry{
		Kind:     kind,
		Slug:     slug,
		Title:    title,
		Category: category,
		Date:     m.Date,
		URL:      Slugify(category) + "/" + slug + ".html",
		Meta:     m,
	}, nil
}

func requireDate(m Metadata) error {
	if !m.Has("date") {
		return fmt.Errorf("%s: %w %q", m.Path, ErrMissingKey, "date")
	}
	return nil
}

func requireYear(m Metadata) (int, error) {
	raw, err := m.Require("year")
	if err != nil {
		return 0, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w %q", m.Path, ErrInvalidYear, raw)
	}
	return year, nil
}

// optionalDate parses s, treating a missing or malformed value as unknown.
func optionalDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return d
}

func (db *DB) loadHeadlines(dir string) error {
	metas, err := readDir(dir)
	if err != nil {
		return err
	}
	headlines := make([]*Headline, 0, len(metas))
	for _, m := range metas {
		e, err := newEntry(KindHeadline, m)
		if err != nil {
			return err
		}
		headlines = append(headlines, &Headline{Entry: e})
	}
	sort.SliceStable(headlines, func(i, j int) bool {
		return headlines[i].Slug > headlines[j].Slug
	})
	db.Headlines = headlines
	return nil
}

func (db *DB) loadMembers(dir string) error {
	metas, err := readDir(dir)
	if err != nil {
		return err
	}
	members := make([]*Member, 0, len(metas))
	for _, m := range metas {
		for _, key := range []string{"title", "position", "membership"} {
			if _, err := m.Require(key); err != nil {
				return err
			}
		}
		e, err := newEntry(KindMember, m)
		if err != nil {
			return err
		}
		member := &Member{
			Entry:         e,
			Position:      m.Get("position"),
			Membership:    strings.ToLower(m.Get("membership")),
			JoinedDate:    optionalDate(m.Get("joined_date")),
			GraduatedDate: optionalDate(m.Get("graduated_date")),
			Publications:  []*Publication{},
			Lectures:      []*Lecture{},
		}
		members = append(members, member)
		db.titleToMember[member.Title] = member
	}
	db.Members = members

	db.CurrentMembers = groupMembers(members, MembershipCurrent, db.order.CurrentPositions,
		func(m *Member) time.Time { return m.JoinedDate })
	db.AlumniMembers = groupMembers(members, MembershipAlumni, db.order.AlumniPositions,
		func(m *Member) time.Time { return m.GraduatedDate })
	return nil
}

func (db *DB) loadProjects(dir string) error {
	metas, err := readDir(dir)
	if err != nil {
		return err
	}
	projects := make([]*Project, 0, len(metas))
	for _, m := range metas {
		if _, err := m.Require("slug"); err != nil {
			return err
		}
		if err := requireDate(m); err != nil {
			return err
		}
		e, err := newEntry(KindProject, m)
		if err != nil {
			return err
		}
		p := &Project{Entry: e, Publications: []*Publication{}}
		projects = append(projects, p)
		db.slugToProject[p.Slug] = p
	}
	sortByDateDesc(projects, func(p *Project) time.Time { return p.Date })
	db.Projects = projects
	return nil
}

func (db *DB) loadPublications(dir string) error {
	metas, err := readDir(dir)
	if err != nil {
		return err
	}
	pubs := make([]*Publication, 0, len(metas))
	for _, m := range metas {
		if err := requireDate(m); err != nil {
			return err
		}
		year, err := requireYear(m)
		if err != nil {
			return err
		}
		for _, key := range []string{"venue_scope", "venue_type", "authors", "projects"} {
			if _, err := m.Require(key); err != nil {
				return err
			}
		}
		e, err := newEntry(KindPublication, m)
		if err != nil {
			return err
		}
		pubs = append(pubs, &Publication{
			Entry:      e,
			Year:       year,
			VenueScope: m.Get("venue_scope"),
			VenueType:  m.Get("venue_type"),
			Authors:    ParseList(m.Get("authors")),
			Projects:   ParseList(m.Get("projects")),
		})
	}
	sortByDateDesc(pubs, func(p *Publication) time.Time { return p.Date })

	// Linking from the sorted list leaves every derived list sorted too.
	for _, p := range pubs {
		for _, title := range unique(p.Authors) {
			if member, ok := db.titleToMember[title]; ok {
				member.Publications = append(member.Publications, p)
			}
		}
		for _, slug := range unique(p.Projects) {
			if project, ok := db.slugToProject[slug]; ok {
				project.Publications = append(project.Publications, p)
			}
		}
	}

	db.Publications = pubs
	db.PublicationsByYear = groupPublications(pubs, db.order)
	return nil
}

func (db *DB) loadLectures(dir string) error {
	metas, err := readDir(dir)
	if err != nil {
		return err
	}
	lectures := make([]*Lecture, 0, len(metas))
	for _, m := range metas {
		if err := requireDate(m); err != nil {
			return err
		}
		year, err := requireYear(m)
		if err != nil {
			return err
		}
		if _, err := m.Require("semester"); err != nil {
			return err
		}
		key := "assistants"
		if !m.Has(key) && m.Has("assitants") {
			key = "assitants"
		}
		if _, err := m.Require(key); err != nil {
			return err
		}
		e, err := newEntry(KindLecture, m)
		if err != nil {
			return err
		}
		lectures = append(lectures, &Lecture{
			Entry:      e,
			Year:       year,
			Semester:   m.Get("semester"),
			Assistants: ParseList(m.Get(key)),
		})
	}
	sortByDateDesc(lectures, func(l *Lecture) time.Time { return l.Date })

	for _, l := range lectures {
		for _, title := range unique(l.Assistants) {
			if member, ok := db.titleToMember[title]; ok {
				member.Lectures = append(member.Lectures, l)
			}
		}
	}

	db.Lectures = lectures
	db.LecturesByYear = groupLectures(lectures, db.order.Semesters)
	return nil
}

// Member returns the member with the given title.
func (db *DB) Member(title string) (*Member, bool) {
	m, ok := db.titleToMember[strings.TrimSpace(title)]
	return m, ok
}

// Project returns the project with the given slug.
func (db *DB) Project(slug string) (*Project, bool) {
	p, ok := db.slugToProject[strings.TrimSpace(slug)]
	return p, ok
}

// PublicationsByMember returns the publications a member authored, newest
// first. Unknown titles yield an empty list.
func (db *DB) PublicationsByMember(title string) []*Publication {
	if m, ok := db.Member(title); ok {
		return m.Publications
	}
	return []*Publication{}
}

// PublicationsByProject returns the publications of a project, newest first.
func (db *DB) PublicationsByProject(slug string) []*Publication {
	if p, ok := db.Project(slug); ok {
		return p.Publications
	}
	return []*Publication{}
}

// LecturesByMember returns the lectures a member assisted, newest first.
func (db *DB) LecturesByMember(title string) []*Lecture {
	if m, ok := db.Member(title); ok {
		return m.Lectures
	}
	return []*Lecture{}
}

func sortByDateDesc[T any](items []T, date func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]).After(date(items[j]))
	})
}

func unique(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := vals[:0:0]
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
