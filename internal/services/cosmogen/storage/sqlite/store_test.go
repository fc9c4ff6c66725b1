package sqlite

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestRecordGetRunRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	input := storage.Run{
		ID:             "run-1",
		Seed:           42,
		Preset:         "default",
		OutputPath:     "/tmp/universe.bin",
		TargetSize:     50 << 30,
		PayloadLength:  123456,
		AllocatedBytes: 131072,
		Sparse:         true,
		Checksum:       math.MaxUint64,
		Census: domain.Census{
			Galaxies:   200,
			Stars:      21000,
			Planets:    157000,
			Inhabited:  80,
			BlackHoles: 300,
			Nebulae:    500,
			Asteroids:  25000,
			Comets:     6000,
		},
		CreatedAt: now,
	}
	if err := store.RecordRun(context.Background(), input); err != nil {
		t.Fatalf("record run: %v", err)
	}

	got, err := store.GetRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, input.CreatedAt)
	}
	got.CreatedAt, input.CreatedAt = time.Time{}, time.Time{}
	if got != input {
		t.Fatalf("run = %+v, want %+v", got, input)
	}
}

func TestRecordRunReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := storage.Run{ID: "run-dup", Seed: 1, Preset: "small", OutputPath: "a.bin"}
	if err := store.RecordRun(context.Background(), input); err != nil {
		t.Fatalf("record initial run: %v", err)
	}
	err := store.RecordRun(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate record error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestRecordRunRequiresID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.RecordRun(context.Background(), storage.Run{ID: "  "}); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetRun(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get run error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := storage.Run{
			ID:         id,
			Seed:       int64(i),
			Preset:     "small",
			OutputPath: id + ".bin",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.RecordRun(context.Background(), run); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("order = [%s %s], want [run-c run-b]", runs[0].ID, runs[1].ID)
	}

	all, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list all runs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("runs = %d, want 3", len(all))
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.RecordRun(context.Background(), storage.Run{ID: "persisted", Preset: "empty"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetRun(context.Background(), "persisted"); err != nil {
		t.Fatalf("get run after reopen: %v", err)
	}
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.RecordRun(ctx, storage.Run{ID: "late"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("record error = %v, want %v", err, context.Canceled)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
