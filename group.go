package labsite

import (
	"sort"
	"time"
)

// groupMembers buckets members with the given membership by position, in the
// order of positions. Positions not listed are left out; so are empty ones.
func groupMembers(members []*Member, membership string, positions []string, date func(*Member) time.Time) []MemberGroup {
	byPosition := make(map[string][]*Member)
	for _, m := range members {
		if m.Membership != membership {
			continue
		}
		byPosition[m.Position] = append(byPosition[m.Position], m)
	}
	groups := make([]MemberGroup, 0, len(positions))
	for _, pos := range positions {
		rows := byPosition[pos]
		if len(rows) == 0 {
			continue
		}
		sortByDateDesc(rows, date)
		groups = append(groups, MemberGroup{Position: pos, Members: rows})
	}
	return groups
}

// groupPublications builds the year → venue scope → venue type tree from
// publications already sorted newest first.
func groupPublications(pubs []*Publication, order Orderings) []PublicationYear {
	type key struct {
		year        int
		scope, kind string
	}
	cache := make(map[key][]*Publication)
	for _, p := range pubs {
		k := key{p.Year, p.VenueScope, p.VenueType}
		cache[k] = append(cache[k], p)
	}

	var years []PublicationYear
	for _, year := range yearsDesc(len(pubs), func(i int) int { return pubs[i].Year }) {
		var scopes []PublicationScope
		for _, scope := range order.VenueScopes {
			var types []PublicationType
			for _, kind := range order.VenueTypes {
				rows := cache[key{year, scope, kind}]
				if len(rows) == 0 {
					continue
				}
				types = append(types, PublicationType{Type: kind, Publications: rows})
			}
			if len(types) == 0 {
				continue
			}
			scopes = append(scopes, PublicationScope{Scope: scope, Types: types})
		}
		if len(scopes) == 0 {
			continue
		}
		years = append(years, PublicationYear{Year: year, Scopes: scopes})
	}
	return years
}

// groupLectures builds the year → semester tree from lectures already sorted
// newest first.
func groupLectures(lectures []*Lecture, semesters []string) []LectureYear {
	type key struct {
		year     int
		semester string
	}
	cache := make(map[key][]*Lecture)
	for _, l := range lectures {
		k := key{l.Year, l.Semester}
		cache[k] = append(cache[k], l)
	}

	var years []LectureYear
	for _, year := range yearsDesc(len(lectures), func(i int) int { return lectures[i].Year }) {
		var groups []LectureSemester
		for _, sem := range semesters {
			rows := cache[key{year, sem}]
			if len(rows) == 0 {
				continue
			}
			groups = append(groups, LectureSemester{Semester: sem, Lectures: rows})
		}
		if len(groups) == 0 {
			continue
		}
		years = append(years, LectureYear{Year: year, Semesters: groups})
	}
	return years
}

// yearsDesc returns the distinct years among n items, newest first.
func yearsDesc(n int, year func(int) int) []int {
	set := make(map[int]struct{})
	for i := 0; i < n; i++ {
		set[year(i)] = struct{}{}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
