package storage

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
)

//go:embed seed
var seedFS embed.FS

// Embedded implements Provider over a read-only fs.FS, typically the content
// bundled into the binary at build time.
type Embedded struct {
	fsys  fs.FS
	built time.Time
}

// NewEmbedded wraps fsys. Embedded files carry no modification time, so
// every document reports the provider's creation time instead.
func NewEmbedded(fsys fs.FS) *Embedded {
	return &Embedded{fsys: fsys, built: time.Now().UTC()}
}

// Seed returns the provider for the default bundled content.
func Seed() *Embedded {
	sub, err := fs.Sub(seedFS, "seed")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(fmt.Sprintf("storage: seed content: %v", err))
	}
	return NewEmbedded(sub)
}

// Open implements fs.FS.
func (e *Embedded) Open(name string) (fs.File, error) { return e.fsys.Open(name) }

// Root implements Provider.
func (e *Embedded) Root() string { return "" }

// List returns metadata for every document under dir.
func (e *Embedded) List(dir string) ([]models.DocumentMetadata, error) {
	if dir == "" {
		dir = "."
	}
	if !fs.ValidPath(dir) {
		return nil, fmt.Errorf("storage: invalid path: %s", dir)
	}
	var out []models.DocumentMetadata
	err := fs.WalkDir(e.fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !parser.IsDocument(d.Name()) {
			return nil
		}
		data, err := fs.ReadFile(e.fsys, p)
		if err != nil {
			return err
		}
		out = append(out, models.DocumentMetadata{
			Path:      path.Clean(p),
			Checksum:  checksum.Sum(data),
			UpdatedAt: e.built,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of an embedded file.
func (e *Embedded) Read(p string) ([]byte, error) {
	if !fs.ValidPath(p) {
		return nil, fmt.Errorf("storage: invalid path: %s", p)
	}
	data, err := fs.ReadFile(e.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	return data, nil
}
