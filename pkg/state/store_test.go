package state

import (
	"errors"
	"testing"
	"time"

	"github.com/image2radiomics/i2r/pkg/config"
)

// newTestStore opens a store in a temp directory with the given TTL.
func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.State.Badger.Path = t.TempDir()
	cfg.State.TTL = ttl

	store, err := NewStore("test", &cfg)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGet(t *testing.T) {
	store := newTestStore(t, 0)

	rec := Record{Signature: 42, Pool: "/work/pool_2026_01_01"}
	if err := store.Put("ds1", rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("ds1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Signature != 42 {
		t.Errorf("Expected signature 42, got %d", got.Signature)
	}
	if got.Pool != "/work/pool_2026_01_01" {
		t.Errorf("Expected pool '/work/pool_2026_01_01', got %q", got.Pool)
	}
	if got.ProcessedAt == 0 {
		t.Errorf("Expected ProcessedAt to be filled in")
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetExpired(t *testing.T) {
	store := newTestStore(t, time.Hour)

	old := Record{Signature: 1, ProcessedAt: time.Now().Add(-2 * time.Hour).Unix()}
	if err := store.Put("old", old); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	_, err := store.Get("old")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Expected ErrExpired, got %v", err)
	}
}

func TestSeen(t *testing.T) {
	store := newTestStore(t, 0)

	if err := store.Put("ds1", Record{Signature: 100}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if !store.Seen("ds1", 100) {
		t.Errorf("Expected ds1 with matching signature to be seen")
	}
	// A changed signature means new content under the same name.
	if store.Seen("ds1", 101) {
		t.Errorf("Expected ds1 with a new signature to be unseen")
	}
	if store.Seen("ds2", 100) {
		t.Errorf("Expected an unknown dataset to be unseen")
	}
}

func TestCount(t *testing.T) {
	store := newTestStore(t, 0)

	for _, name := range []string{"a", "b", "c"} {
		if err := store.Put(name, Record{Signature: 1}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 markers, got %d", n)
	}
}

func TestReopenKeepsMarkers(t *testing.T) {
	cfg := config.Default()
	cfg.State.Badger.Path = t.TempDir()

	store, err := NewStore("test", &cfg)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Put("ds1", Record{Signature: 7}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewStore("test", &cfg)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	if !reopened.Seen("ds1", 7) {
		t.Errorf("Expected the marker to survive a reopen")
	}
}
