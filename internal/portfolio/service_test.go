package portfolio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/testutil"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events [][]string
}

func (n *recordingNotifier) PublishContentEvent(_ string, collections ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, collections)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testService(t *testing.T) (*Service, *recordingNotifier, string) {
	t.Helper()
	dir, provider := testutil.DefaultContent(t)
	store, err := content.NewStore(provider)
	if err != nil {
		t.Fatal(err)
	}
	db, err := index.Open(testutil.TestDBPath(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	n := &recordingNotifier{}
	svc := NewService(store, content.NewFacade(store, time.Millisecond), db, n, discard())
	if err := svc.SyncIndex(context.Background()); err != nil {
		t.Fatalf("SyncIndex: %v", err)
	}
	return svc, n, dir
}

func TestReload_PublishesChangedCollections(t *testing.T) {
	svc, n, dir := testService(t)
	ctx := context.Background()

	testutil.WriteFile(t, dir, "projects.yaml", "- id: solo\n  projectName: Solo Launch\n")
	res, err := svc.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if diff := cmp.Diff([]models.Collection{models.CollectionProjects}, res.Changed); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
	if res.Projects != 1 || res.Experience != 3 {
		t.Errorf("counts = %d/%d, want 3/1", res.Experience, res.Projects)
	}
	if diff := cmp.Diff([][]string{{"projects"}}, n.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	results, err := svc.Search(ctx, "Solo", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "solo" {
		t.Errorf("search after reload = %+v", results)
	}
}

func TestReload_UnchangedPublishesNothing(t *testing.T) {
	svc, n, _ := testService(t)
	res, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changed) != 0 {
		t.Errorf("changed = %v, want none", res.Changed)
	}
	if len(n.events) != 0 {
		t.Errorf("events = %v, want none", n.events)
	}
}

func TestReload_InvalidKeepsContent(t *testing.T) {
	svc, _, dir := testService(t)
	before := svc.Snapshot()

	testutil.WriteFile(t, dir, "projects.yaml", "- id: broken\n")
	_, err := svc.Reload(context.Background())
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if svc.Snapshot() != before {
		t.Error("snapshot replaced after failed reload")
	}
}

func TestReload_ReadFailureIsNotInvalid(t *testing.T) {
	svc, _, dir := testService(t)
	before := svc.Snapshot()

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Reload(context.Background())
	if err == nil {
		t.Fatal("expected reload error")
	}
	if errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, read failure must not wrap ErrInvalid", err)
	}
	if svc.Snapshot() != before {
		t.Error("snapshot replaced after failed reload")
	}
}

type stubSearcher struct {
	query string
	limit int
	err   error
}

func (s *stubSearcher) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	s.query, s.limit = query, limit
	if s.err != nil {
		return nil, s.err
	}
	return []index.SearchResult{{Collection: "projects", ID: "p1", Title: "One"}}, nil
}

func TestSearch_UsesSearcher(t *testing.T) {
	svc, _, _ := testService(t)
	stub := &stubSearcher{}
	svc.searcher = stub

	results, err := svc.Search(context.Background(), "  one  ", 7)
	if err != nil {
		t.Fatal(err)
	}
	if stub.query != "one" || stub.limit != 7 {
		t.Errorf("searcher got (%q, %d), want (\"one\", 7)", stub.query, stub.limit)
	}
	if len(results) != 1 || results[0].ID != "p1" {
		t.Errorf("results = %+v", results)
	}

	stub.err = errors.New("boom")
	if _, err := svc.Search(context.Background(), "one", 7); err == nil {
		t.Error("expected searcher error")
	}
}

func TestStatus_ReportsContentAndIndex(t *testing.T) {
	svc, _, _ := testService(t)
	st, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Experience != 3 || st.Projects != 5 {
		t.Errorf("counts = %d/%d, want 3/5", st.Experience, st.Projects)
	}
	if diff := cmp.Diff(map[string]int{"experience": 3, "projects": 5}, st.Indexed); diff != "" {
		t.Errorf("indexed (-want +got):\n%s", diff)
	}
	var paths []string
	for _, d := range st.Documents {
		paths = append(paths, d.Path)
	}
	if diff := cmp.Diff([]string{"experience.yaml", "projects.yaml"}, paths); diff != "" {
		t.Errorf("documents (-want +got):\n%s", diff)
	}
	if st.Version != svc.Snapshot().Version() {
		t.Errorf("version = %q, want snapshot version", st.Version)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc, _, _ := testService(t)
	_, err := svc.Search(context.Background(), "  ", 10)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestSearch_WithoutIndex(t *testing.T) {
	_, provider := testutil.DefaultContent(t)
	store, err := content.NewStore(provider)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(store, content.NewFacade(store, 0), nil, nil, discard())
	results, err := svc.Search(context.Background(), "Acme", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
}
