// Package testutil provides shared test helpers for content directories and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/storage"
)

// ExperienceYAML holds three records: two dated, one undated, declared out of order.
const ExperienceYAML = `
- id: exp-2023
  title: Engineer
  organizationName: Initech
  startDate: 2023-06
  endDate: 2023-12
- id: exp-undated
  title: Maintainer
  organizationName: Open Source
- id: exp-2024
  title: Senior Engineer
  organizationName: Acme
  startDate: 2024-01
`

// ProjectsYAML holds five projects.
const ProjectsYAML = `
- id: p1
  projectName: One
  techStack: Go, SQLite
- id: p2
  projectName: Two
  projectType: Web
  techStack: React
- id: p3
  projectName: Three
- id: p4
  projectName: Four
- id: p5
  projectName: Five
  projectDescription: searchable fifth project
`

// WriteFile writes content to rel under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestContent creates a temporary content directory holding the given
// files and returns it with a storage.FS over it.
func TestContent(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// DefaultContent is TestContent with ExperienceYAML and ProjectsYAML.
func DefaultContent(t *testing.T) (string, *storage.FS) {
	t.Helper()
	return TestContent(t, map[string]string{
		"experience.yaml": ExperienceYAML,
		"projects.yaml":   ProjectsYAML,
	})
}

// TestDBPath returns a temporary SQLite file path that is removed on cleanup.
func TestDBPath(t *testing.T) string {
	t.Helper()
	dbFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() {
		os.Remove(dbFile.Name())
		os.Remove(dbFile.Name() + "-wal")
		os.Remove(dbFile.Name() + "-shm")
	})
	return dbFile.Name()
}
