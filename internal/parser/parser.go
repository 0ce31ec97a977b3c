// Package parser decodes and validates collection documents.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Extensions lists the document extensions a collection may be stored under,
// in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// IsDocument reports whether name has a collection document extension.
func IsDocument(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CollectionOf maps a document path to its collection by file stem.
// "experience.yaml" → experience. ok is false for anything else.
func CollectionOf(p string) (models.Collection, bool) {
	if !IsDocument(p) {
		return "", false
	}
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	c := models.Collection(strings.TrimSuffix(base, path.Ext(base)))
	return c, c.Known()
}

// ParseExperience decodes an ordered list of Experience records.
func ParseExperience(data []byte) ([]models.Experience, error) {
	return parse[models.Experience](data)
}

// ParseProjects decodes an ordered list of Project records.
func ParseProjects(data []byte) ([]models.Project, error) {
	return parse[models.Project](data)
}

type validatableRecord interface {
	models.Record
	validation.Validatable
}

// parse strictly decodes data (YAML or JSON, which is a YAML subset), then
// validates each record and id uniqueness. Declaration order is preserved.
func parse[T validatableRecord](data []byte) ([]T, error) {
	out := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parser: decode: %w: %w", apperr.ErrInvalid, err)
	}

	seen := make(map[string]int, len(out))
	for i, rec := range out {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("parser: record %d (%q): %w: %w", i, rec.RecordID(), apperr.ErrInvalid, err)
		}
		if prev, dup := seen[rec.RecordID()]; dup {
			return nil, fmt.Errorf("parser: record %d: %w: duplicate id %q (first at %d)", i, apperr.ErrInvalid, rec.RecordID(), prev)
		}
		seen[rec.RecordID()] = i
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
