// Package portfolio coordinates the content store, the search index and
// change notifications. Both the HTTP API and the MCP server go through it.
package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/models"
)

// Notifier is told which collections changed after a reload.
type Notifier interface {
	PublishContentEvent(version string, collections ...string)
}

// ReloadResult describes a completed reload.
type ReloadResult struct {
	Version    string              `json:"version"`
	Changed    []models.Collection `json:"changed"`
	Experience int                 `json:"experience"`
	Projects   int                 `json:"projects"`
}

// Status reports what is currently served and indexed.
type Status struct {
	Version    string                    `json:"version"`
	Experience int                       `json:"experience"`
	Projects   int                       `json:"projects"`
	Indexed    map[string]int            `json:"indexed"`
	Documents  []models.DocumentMetadata `json:"documents"`
	LoadedAt   time.Time                 `json:"loaded_at"`
}

// Service coordinates content, index and notifications.
type Service struct {
	store    *content.Store
	facade   *content.Facade
	db       *index.DB
	searcher index.Searcher
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new portfolio service. db and notifier may be nil.
func NewService(store *content.Store, facade *content.Facade, db *index.DB, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, facade: facade, db: db, notifier: notifier, logger: logger}
	if db != nil {
		s.searcher = db
	}
	return s
}

// Facade returns the content retrieval facade.
func (s *Service) Facade() *content.Facade { return s.facade }

// Snapshot returns the content currently served.
func (s *Service) Snapshot() *content.Snapshot { return s.store.Snapshot() }

// Reload re-reads the content source. A failed reload keeps the previous
// content. Documents that fail to parse or validate wrap apperr.ErrInvalid;
// read failures do not.
func (s *Service) Reload(ctx context.Context) (ReloadResult, error) {
	prev := s.store.Snapshot()
	snap, err := s.store.Reload()
	if err != nil {
		return ReloadResult{}, fmt.Errorf("portfolio: reload: %w", err)
	}
	changed := snap.Changed(prev)
	if len(changed) > 0 {
		s.Apply(ctx, snap, changed)
	}
	return ReloadResult{
		Version:    snap.Version(),
		Changed:    changed,
		Experience: len(snap.Experience),
		Projects:   len(snap.Projects),
	}, nil
}

// Apply propagates a new snapshot to the index and to subscribers.
func (s *Service) Apply(ctx context.Context, snap *content.Snapshot, changed []models.Collection) {
	if s.db != nil {
		if err := index.Sync(ctx, s.db, snap, s.logger); err != nil {
			s.logger.Warn("portfolio: index sync failed", slog.String("error", err.Error()))
		}
	}
	if s.notifier != nil && len(changed) > 0 {
		names := make([]string, len(changed))
		for i, c := range changed {
			names[i] = string(c)
		}
		s.notifier.PublishContentEvent(snap.Version(), names...)
	}
}

// OnReload adapts Apply to a watcher callback bound to ctx.
func (s *Service) OnReload(ctx context.Context) content.ReloadCallback {
	return func(snap *content.Snapshot, changed []models.Collection) {
		s.Apply(ctx, snap, changed)
	}
}

// SyncIndex brings the index up to date with the current snapshot.
func (s *Service) SyncIndex(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return index.Sync(ctx, s.db, s.store.Snapshot(), s.logger)
}

// Search queries the index. An empty query wraps apperr.ErrInvalid.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("portfolio: search: %w: empty query", apperr.ErrInvalid)
	}
	if s.searcher == nil {
		return []index.SearchResult{}, nil
	}
	results, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("portfolio: search: %w", err)
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	return results, nil
}

// Status summarises the served snapshot and the index row counts.
func (s *Service) Status(ctx context.Context) (Status, error) {
	snap := s.store.Snapshot()
	st := Status{
		Version:    snap.Version(),
		Experience: len(snap.Experience),
		Projects:   len(snap.Projects),
		Indexed:    map[string]int{},
		Documents:  snap.Documents,
		LoadedAt:   snap.LoadedAt,
	}
	if s.db == nil {
		return st, nil
	}
	counts, err := s.db.Count(ctx)
	if err != nil {
		return st, fmt.Errorf("portfolio: status: %w", err)
	}
	st.Indexed = counts
	return st, nil
}
