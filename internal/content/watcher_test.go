package content

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/testutil"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatch_ReloadsOnDocumentChange(t *testing.T) {
	_, store, dir := testFacade(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var changed []models.Collection

	go Watch(ctx, store, quietLogger(), func(_ *Snapshot, c []models.Collection) {
		mu.Lock()
		changed = append(changed, c...)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, "projects.yaml", "- id: fresh\n  projectName: Fresh\n")

	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		return len(store.Snapshot().Projects) == 1
	}, "store was not reloaded after document change")

	eventually(t, time.Second, 20*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) == 1 && changed[0] == models.CollectionProjects
	}, "callback did not report the projects collection")
}

func TestWatch_InvalidEditKeepsContent(t *testing.T) {
	_, store, dir := testFacade(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, store, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, "experience.yaml", "- id: broken\n")
	time.Sleep(500 * time.Millisecond)

	if len(store.Snapshot().Experience) != 3 {
		t.Errorf("experience = %d, want previous 3", len(store.Snapshot().Experience))
	}
}

func TestWatch_RequiresDiskContent(t *testing.T) {
	store, err := NewStore(storage.Seed())
	if err != nil {
		t.Fatal(err)
	}
	if err := Watch(context.Background(), store, quietLogger(), nil); err == nil {
		t.Error("expected error watching embedded content")
	}
}
