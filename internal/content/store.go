// Package content holds the static content store and the retrieval facade
// every page reads collections through.
package content

import (
	"fmt"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
	"github.com/starford/folio/internal/storage"
)

// Snapshot is an immutable, fully validated view of every collection.
type Snapshot struct {
	Experience []models.Experience
	Projects   []models.Project
	// Checksums maps each collection to the checksum of its source document.
	// A collection without a document has an empty checksum.
	Checksums map[models.Collection]string
	// Documents lists the source document of each loaded collection.
	Documents []models.DocumentMetadata
	LoadedAt  time.Time
}

// Version fingerprints the whole snapshot.
func (s *Snapshot) Version() string {
	sums := make([]string, 0, len(s.Checksums))
	for _, c := range models.Collections() {
		sums = append(sums, s.Checksums[c])
	}
	return checksum.Combine(sums...)
}

// Changed returns the collections whose checksum differs between s and prev.
func (s *Snapshot) Changed(prev *Snapshot) []models.Collection {
	var out []models.Collection
	for _, c := range models.Collections() {
		if prev == nil || prev.Checksums[c] != s.Checksums[c] {
			out = append(out, c)
		}
	}
	return out
}

// Store owns the current snapshot. Records are never mutated; a reload builds
// a new snapshot and swaps it in atomically.
type Store struct {
	provider storage.Provider
	current  atomic.Pointer[Snapshot]
}

// NewStore loads the initial snapshot from provider.
func NewStore(provider storage.Provider) (*Store, error) {
	s := &Store{provider: provider}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Provider returns the underlying content source.
func (s *Store) Provider() storage.Provider { return s.provider }

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot { return s.current.Load() }

// Reload re-reads every collection document. On failure the previous
// snapshot stays in place and the error is returned.
func (s *Store) Reload() (*Snapshot, error) {
	snap, err := load(s.provider)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	return snap, nil
}

func load(p storage.Provider) (*Snapshot, error) {
	snap := &Snapshot{
		Experience: []models.Experience{},
		Projects:   []models.Project{},
		Checksums:  make(map[models.Collection]string, 2),
		Documents:  []models.DocumentMetadata{},
		LoadedAt:   time.Now().UTC(),
	}

	metas, err := p.List(".")
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	docs := documents(metas)

	data, err := readDocument(p, docs[models.CollectionExperience])
	if err != nil {
		return nil, err
	}
	if data != nil {
		if snap.Experience, err = parser.ParseExperience(data); err != nil {
			return nil, fmt.Errorf("content: %s: %w", docs[models.CollectionExperience].Path, err)
		}
	}

	data, err = readDocument(p, docs[models.CollectionProjects])
	if err != nil {
		return nil, err
	}
	if data != nil {
		if snap.Projects, err = parser.ParseProjects(data); err != nil {
			return nil, fmt.Errorf("content: %s: %w", docs[models.CollectionProjects].Path, err)
		}
	}

	for _, c := range models.Collections() {
		if m, ok := docs[c]; ok {
			snap.Checksums[c] = m.Checksum
			snap.Documents = append(snap.Documents, m)
		}
	}
	return snap, nil
}

// documents picks, for each collection, the document at the provider root
// with the earliest extension in parser.Extensions.
func documents(metas []models.DocumentMetadata) map[models.Collection]models.DocumentMetadata {
	rank := make(map[string]int, len(parser.Extensions))
	for i, ext := range parser.Extensions {
		rank[ext] = i
	}
	out := make(map[models.Collection]models.DocumentMetadata, 2)
	for _, m := range metas {
		if strings.Contains(m.Path, "/") {
			continue
		}
		c, ok := parser.CollectionOf(m.Path)
		if !ok {
			continue
		}
		if prev, seen := out[c]; seen && rank[strings.ToLower(path.Ext(prev.Path))] <= rank[strings.ToLower(path.Ext(m.Path))] {
			continue
		}
		out[c] = m
	}
	return out
}

// readDocument returns the bytes of m. A zero m (no document) yields nil
// data and no error.
func readDocument(p storage.Provider, m models.DocumentMetadata) ([]byte, error) {
	if m.Path == "" {
		return nil, nil
	}
	data, err := p.Read(m.Path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return data, nil
}
