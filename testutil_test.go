package labsite

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates each relative path under dir with the given content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// labData is a small but complete data directory.
var labData = map[string]string{
	"headlines/2025-01-10-grant.md": "Title: Grant awarded\nSlug: 2025-01-10-grant\nDate: 2025-01-10\nSummary: We got a grant.\n",
	"headlines/2025-06-01-paper.md": "Title: Paper accepted\nSlug: 2025-06-01-paper\nDate: 2025-06-01\n",

	"members/alice.md": "Title: Alice Kim\nSlug: alice\nPosition: Professor\nMembership: Current\nJoined_Date: 2015-03-01\n\nAlice leads the lab.\n",
	"members/bob.md":   "Title: Bob Lee\nSlug: bob\nPosition: PhD Student\nMembership: current\nJoined_Date: 2021-09-01\n",
	"members/carol.md": "Title: Carol Park\nSlug: carol\nPosition: PhD Student\nMembership: current\nJoined_Date: 2023-03-01\n",
	"members/dave.md":  "Title: Dave Cho\nSlug: dave\nPosition: Master\nMembership: alumni\nGraduated_Date: 2020-02-28\n",

	"projects/search.md": "Title: Search\nSlug: search\nDate: 2022-01-01\n",
	"projects/vision.md": "Title: Vision\nSlug: vision\nDate: 2024-01-01\n",

	"publications/p1.md": "Title: P1\nSlug: p1\nDate: 2024-05-01\nYear: 2024\nVenue_Scope: Global\nVenue_Type: Conference\nAuthors: Bob Lee, Alice Kim, Outsider\nProjects: search, missing\n",
	"publications/p2.md": "Title: P2\nSlug: p2\nDate: 2024-09-01\nYear: 2024\nVenue_Scope: Domestic\nVenue_Type: Journal\nAuthors: Alice Kim, Alice Kim\nProjects: vision, search\n",
	"publications/p3.md": "Title: P3\nSlug: p3\nDate: 2023-02-01\nYear: 2023\nVenue_Scope: Global\nVenue_Type: Journal\nAuthors: Carol Park\nProjects:\n",

	"lectures/ir.md":  "Title: Information Retrieval\nSlug: ir\nDate: 2024-09-01\nYear: 2024\nSemester: Fall\nAssistants: Bob Lee\n",
	"lectures/nlp.md": "Title: NLP\nSlug: nlp\nDate: 2024-03-01\nYear: 2024\nSemester: Spring\nAssitants: Bob Lee, Carol Park\n",
	"lectures/db.md":  "Title: Databases\nSlug: db\nDate: 2023-03-01\nYear: 2023\nSemester: Spring\nAssistants:\n",
}

func loadLabDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, labData)
	db, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return db
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (equivalent to Go 1.24's t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
