package labsite

import "time"

// Membership values recognised when grouping members.
const (
	MembershipCurrent = "current"
	MembershipAlumni  = "alumni"
)

// Kinds of content under the data directory. Each kind lives in its own
// subdirectory and doubles as the default article category.
const (
	KindHeadline    = "headline"
	KindMember      = "member"
	KindProject     = "project"
	KindPublication = "publication"
	KindLecture     = "lecture"
)

// dataDirs maps each kind to its directory under the data root.
var dataDirs = map[string]string{
	KindHeadline:    "headlines",
	KindMember:      "members",
	KindProject:     "projects",
	KindPublication: "publications",
	KindLecture:     "lectures",
}

// Entry is the part every content item shares: where it came from, where it
// is written and what it says.
type Entry struct {
	Kind     string
	Slug     string
	Title    string
	Category string
	Date     time.Time
	URL      string // site-relative, e.g. "member/jane-doe.html"
	Meta     Metadata
}

// Body returns the free-text body following the metadata header.
func (e *Entry) Body() string { return e.Meta.Body }

// Get returns a free-form metadata field.
func (e *Entry) Get(key string) string { return e.Meta.Get(key) }

// Headline is a news item on the front page.
type Headline struct {
	Entry
}

// Member is a lab member. Publications and Lectures are filled by the
// cross-linking pass.
type Member struct {
	Entry
	Position      string
	Membership    string
	JoinedDate    time.Time // zero when unknown
	GraduatedDate time.Time // zero when unknown

	Publications []*Publication
	Lectures     []*Lecture
}

// Project is a research project. Publications is filled by cross-linking.
type Project struct {
	Entry
	Publications []*Publication
}

// Publication is a paper. Authors holds member titles and Projects holds
// project slugs; either may name entities that do not exist.
type Publication struct {
	Entry
	Year       int
	VenueScope string
	VenueType  string
	Authors    []string
	Projects   []string
}

// Lecture is a course the lab teaches. Assistants holds member titles.
type Lecture struct {
	Entry
	Year       int
	Semester   string
	Assistants []string
}

// MemberGroup is the members holding one position.
type MemberGroup struct {
	Position string
	Members  []*Member
}

// PublicationYear groups one year's publications by venue scope.
type PublicationYear struct {
	Year   int
	Scopes []PublicationScope
}

// PublicationScope groups one venue scope's publications by venue type.
type PublicationScope struct {
	Scope string
	Types []PublicationType
}

// PublicationType is the leaf group of the publication tree.
type PublicationType struct {
	Type         string
	Publications []*Publication
}

// LectureYear groups one year's lectures by semester.
type LectureYear struct {
	Year      int
	Semesters []LectureSemester
}

// LectureSemester is the leaf group of the lecture tree.
type LectureSemester struct {
	Semester string
	Lectures []*Lecture
}
