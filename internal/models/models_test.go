package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func mustDate(t *testing.T, s string) *Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return &d
}

func TestParseDate_Formats(t *testing.T) {
	cases := map[string]string{
		"2024-01":              "2024-01",
		"2023-06-15":           "2023-06-15",
		"2022-03-04T10:00:00Z": "2022-03-04",
	}
	for in, want := range cases {
		d, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if d.String() != want {
			t.Errorf("ParseDate(%q) = %q, want %q", in, d.String(), want)
		}
	}
	if _, err := ParseDate("last spring"); err == nil {
		t.Error("expected error for free-text date")
	}
}

func TestParseDate_RFC3339KeepsLocalDay(t *testing.T) {
	d, err := ParseDate("2024-01-01T00:30:00+02:00")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-01-01" {
		t.Errorf("date = %q, want 2024-01-01", d.String())
	}
	month, _ := ParseDate("2024-01")
	if d.Before(month) {
		t.Error("day in January sorts before the January month date")
	}
}

func TestDate_YAMLAcceptsUnquotedTimestamp(t *testing.T) {
	var v struct {
		Start *Date `yaml:"start"`
	}
	if err := yaml.Unmarshal([]byte("start: 2024-01-15\n"), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Start == nil || v.Start.String() != "2024-01-15" {
		t.Errorf("start = %v", v.Start)
	}
}

func TestDate_JSONRoundTripKeepsPrecision(t *testing.T) {
	e := Experience{ID: "a", Title: "Engineer", OrganizationName: "Acme", StartDate: mustDate(t, "2024-01")}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"startDate":"2024-01"`) {
		t.Errorf("json = %s", data)
	}
	if strings.Contains(string(data), "endDate") {
		t.Errorf("absent endDate should be omitted: %s", data)
	}
	var back Experience
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(e, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExperience_Validate(t *testing.T) {
	ok := Experience{ID: "a", Title: "Engineer", OrganizationName: "Acme",
		StartDate: mustDate(t, "2023-06"), EndDate: mustDate(t, "2024-01")}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid experience rejected: %v", err)
	}

	ongoing := Experience{ID: "b", Title: "Engineer", OrganizationName: "Acme", StartDate: mustDate(t, "2023-06")}
	if err := ongoing.Validate(); err != nil {
		t.Fatalf("ongoing experience rejected: %v", err)
	}
	if !ongoing.Ongoing() {
		t.Error("experience without end date should be ongoing")
	}

	reversed := ok
	reversed.StartDate, reversed.EndDate = ok.EndDate, ok.StartDate
	err := reversed.Validate()
	if err == nil || !strings.Contains(err.Error(), "endDate") {
		t.Errorf("reversed dates should fail on endDate, got %v", err)
	}

	missing := Experience{ID: "c"}
	if err := missing.Validate(); err == nil {
		t.Error("missing title should fail")
	}
}

func TestProject_TechList(t *testing.T) {
	p := Project{TechStack: " Go, React ,, PostgreSQL "}
	want := []string{"Go", "React", "PostgreSQL"}
	if diff := cmp.Diff(want, p.TechList()); diff != "" {
		t.Errorf("TechList mismatch (-want +got):\n%s", diff)
	}
	if got := (Project{}).TechList(); len(got) != 0 {
		t.Errorf("empty stack = %v", got)
	}
}

func TestProject_ValidateLinks(t *testing.T) {
	p := Project{ID: "p", ProjectName: "Site", GithubLink: "not a url"}
	if err := p.Validate(); err == nil {
		t.Error("invalid github link should fail")
	}
	p.GithubLink = "https://github.com/example/site"
	if err := p.Validate(); err != nil {
		t.Errorf("valid project rejected: %v", err)
	}
}

func TestCollection_Known(t *testing.T) {
	for _, c := range Collections() {
		if !c.Known() {
			t.Errorf("%s should be known", c)
		}
	}
	if Collection("nonexistent").Known() {
		t.Error("nonexistent should not be known")
	}
}
