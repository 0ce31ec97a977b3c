// Package models defines the content record types served by Folio.
package models

// Collection names a flat group of same-shaped content records.
type Collection string

// Known collections.
const (
	CollectionExperience Collection = "experience"
	CollectionProjects   Collection = "projects"
)

// Collections returns every known collection in a fixed order.
func Collections() []Collection {
	return []Collection{CollectionExperience, CollectionProjects}
}

// Known reports whether c is one of the known collections.
func (c Collection) Known() bool {
	return c == CollectionExperience || c == CollectionProjects
}

func (c Collection) String() string { return string(c) }

// Record is a single content entity belonging to a collection.
type Record interface {
	RecordID() string
	Collection() Collection
}
