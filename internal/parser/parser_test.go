package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/folio/internal/apperr"
)

func TestParseExperience_KeepsDeclarationOrder(t *testing.T) {
	input := []byte(`
- id: exp-2
  title: Engineer
  organizationName: Acme
  startDate: 2023-06
- id: exp-1
  title: Intern
  organizationName: Initech
  startDate: 2024-01
  endDate: 2024-06
`)
	recs, err := ParseExperience(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID != "exp-2" || recs[1].ID != "exp-1" {
		t.Errorf("order = [%s %s], want [exp-2 exp-1]", recs[0].ID, recs[1].ID)
	}
	if recs[1].EndDate == nil || recs[1].EndDate.String() != "2024-06" {
		t.Errorf("endDate = %v", recs[1].EndDate)
	}
}

func TestParseProjects_JSON(t *testing.T) {
	input := []byte(`[{"id":"p1","projectName":"Site","techStack":"Go, React"}]`)
	recs, err := ParseProjects(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].ProjectName != "Site" {
		t.Errorf("recs = %+v", recs)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	recs, err := ParseProjects([]byte("  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("recs = %v, want empty non-nil", recs)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := ParseProjects([]byte("- id: p1\n  projectName: Site\n  colour: red\n"))
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("unknown field should fail as invalid, got %v", err)
	}
}

func TestParse_DuplicateID(t *testing.T) {
	_, err := ParseProjects([]byte("- id: p1\n  projectName: A\n- id: p1\n  projectName: B\n"))
	if !errors.Is(err, apperr.ErrInvalid) || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestParse_InvalidRecord(t *testing.T) {
	_, err := ParseExperience([]byte("- id: e1\n  title: Engineer\n"))
	if !errors.Is(err, apperr.ErrInvalid) || !strings.Contains(err.Error(), "organizationName") {
		t.Fatalf("expected organizationName error, got %v", err)
	}
}

func TestCollectionOf(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"experience.yaml":       {"experience", true},
		"content/projects.json": {"projects", true},
		"projects.yml":          {"projects", true},
		"notes.yaml":            {"notes", false},
		"projects.md":           {"", false},
	}
	for in, tc := range cases {
		got, ok := CollectionOf(in)
		if ok != tc.ok || (tc.ok && string(got) != tc.want) {
			t.Errorf("CollectionOf(%q) = (%q, %v), want (%q, %v)", in, got, ok, tc.want, tc.ok)
		}
	}
}
