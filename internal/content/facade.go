package content

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// DefaultLatency emulates the round trip of a remote content API.
const DefaultLatency = 100 * time.Millisecond

// Result wraps every record of one collection, in store order.
type Result struct {
	Items []models.Record `json:"items"`
}

// Items returns the records of r that are of type T.
func Items[T models.Record](r Result) []T {
	out := make([]T, 0, len(r.Items))
	for _, rec := range r.Items {
		if v, ok := rec.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Facade is the single access point to content collections.
type Facade struct {
	store   *Store
	latency time.Duration
}

// NewFacade creates a facade over store that waits latency before answering.
func NewFacade(store *Store, latency time.Duration) *Facade {
	return &Facade{store: store, latency: latency}
}

// GetAll returns every record of the named collection. Unknown collection
// names yield an empty result, not an error. The only error is ctx ending
// during the emulated latency.
func (f *Facade) GetAll(ctx context.Context, name models.Collection) (Result, error) {
	empty := Result{Items: []models.Record{}}
	if err := f.wait(ctx); err != nil {
		return empty, err
	}

	snap := f.store.Snapshot()
	switch name {
	case models.CollectionExperience:
		items := make([]models.Record, len(snap.Experience))
		for i, e := range snap.Experience {
			items[i] = e
		}
		return Result{Items: items}, nil
	case models.CollectionProjects:
		items := make([]models.Record, len(snap.Projects))
		for i, p := range snap.Projects {
			items[i] = p
		}
		return Result{Items: items}, nil
	default:
		return empty, nil
	}
}

// Experience is GetAll for the experience collection, typed.
func (f *Facade) Experience(ctx context.Context) ([]models.Experience, error) {
	res, err := f.GetAll(ctx, models.CollectionExperience)
	if err != nil {
		return nil, err
	}
	return Items[models.Experience](res), nil
}

// Projects is GetAll for the projects collection, typed.
func (f *Facade) Projects(ctx context.Context) ([]models.Project, error) {
	res, err := f.GetAll(ctx, models.CollectionProjects)
	if err != nil {
		return nil, err
	}
	return Items[models.Project](res), nil
}

// Project returns the project with the given id.
func (f *Facade) Project(ctx context.Context, id string) (models.Project, error) {
	projects, err := f.Projects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("content: project %q: %w", id, apperr.ErrNotFound)
}

// Checksum returns the source document checksum of a collection, or "".
func (f *Facade) Checksum(name models.Collection) string {
	return f.store.Snapshot().Checksums[name]
}

func (f *Facade) wait(ctx context.Context) error {
	if f.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
