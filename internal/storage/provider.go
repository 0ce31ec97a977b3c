// Package storage defines the read-only content source abstraction.
package storage

import (
	"io/fs"

	"github.com/starford/folio/internal/models"
)

// Provider is the interface for content document access. It is also an
// fs.FS so static assets next to the documents can be served directly.
type Provider interface {
	fs.FS
	// List returns metadata for every collection document under dir (relative to root).
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Root returns the on-disk directory backing the provider, or "" when
	// the content is compiled into the binary.
	Root() string
}
