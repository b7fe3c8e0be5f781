package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"main/model"
)

func newTestStore(t *testing.T) *FileEntryStore {
	t.Helper()
	return NewFileEntryStore(filepath.Join(t.TempDir(), "journal.json"))
}

func TestFileStoreCreateMonotonicIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		entry, err := store.Create(ctx, "Title", "Content")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if entry.ID != i {
			t.Errorf("entry %d got id %d", i, entry.ID)
		}
	}
}

func TestFileStoreCreateRejectsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "   ", "\t\n"); err != ErrEmptyEntry {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}

	if got := len(store.ListAll(ctx)); got != 0 {
		t.Errorf("store should stay empty, has %d entries", got)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "A day", "It went fine.")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A fresh store over the same file must read back the identical entry.
	reopened := NewFileEntryStore(store.path)
	entries := reopened.ListAll(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != created.ID || got.Title != created.Title ||
		got.Content != created.Content || got.CreatedAt != created.CreatedAt {
		t.Errorf("round trip mismatch: %+v vs %+v", got, *created)
	}
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileEntryStore(path)
	if got := len(store.ListAll(context.Background())); got != 0 {
		t.Errorf("corrupt store should read as empty, got %d entries", got)
	}
}

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewFileEntryStore(filepath.Join(t.TempDir(), "nope.json"))
	if got := len(store.ListAll(context.Background())); got != 0 {
		t.Errorf("missing store should read as empty, got %d entries", got)
	}
}

func TestFileStoreRepairsDuplicateIDsOnLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Simulate the concurrent-create race by persisting a duplicate id.
	dup := []model.Entry{
		{ID: 1, Title: "first", CreatedAt: "2024-01-01T08:00:00.000000Z"},
		{ID: 1, Title: "second", CreatedAt: "2024-01-02T08:00:00.000000Z"},
	}
	store.mu.Lock()
	if err := store.save(dup); err != nil {
		store.mu.Unlock()
		t.Fatal(err)
	}
	store.mu.Unlock()

	entries := store.ListAll(ctx)
	if len(entries) != 2 {
		t.Fatalf("repair changed the count: %d", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Errorf("ids still collide after repair: %d", entries[0].ID)
	}

	// The correction must have been written back.
	store.mu.Lock()
	onDisk := store.load()
	store.mu.Unlock()
	if onDisk[0].ID == onDisk[1].ID {
		t.Errorf("repair was not persisted")
	}
}

func TestFileStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "before", "old content")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, "after", "new content"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	entries := store.ListAll(ctx)
	if entries[0].Title != "after" || entries[0].Content != "new content" {
		t.Errorf("update not applied: %+v", entries[0])
	}
	if entries[0].CreatedAt != created.CreatedAt {
		t.Errorf("update must not touch created_at")
	}

	if err := store.Update(ctx, 999, "x", "y"); err != ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestFileStoreDeleteAbsentIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "keep", "me"); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, 42); err != nil {
		t.Fatalf("deleting an absent id should not fail: %v", err)
	}
	if got := len(store.ListAll(ctx)); got != 1 {
		t.Errorf("expected 1 entry, got %d", got)
	}
}

func TestFileStoreDeleteBulkIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := store.Create(ctx, "entry", "content"); err != nil {
			t.Fatal(err)
		}
	}

	ids := map[int]struct{}{2: {}, 4: {}}
	if err := store.DeleteBulk(ctx, ids); err != nil {
		t.Fatalf("first bulk delete failed: %v", err)
	}
	after := store.ListAll(ctx)

	if err := store.DeleteBulk(ctx, ids); err != nil {
		t.Fatalf("second bulk delete failed: %v", err)
	}
	again := store.ListAll(ctx)

	if len(after) != 2 || len(again) != 2 {
		t.Fatalf("expected 2 entries after both deletes, got %d then %d", len(after), len(again))
	}
	for i := range after {
		if after[i].ID != again[i].ID {
			t.Errorf("second delete changed the store")
		}
	}
}

func TestFileStoreFindByIDsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixed := []model.Entry{
		{ID: 1, Title: "oldest", CreatedAt: "2024-01-01T08:00:00.000000Z"},
		{ID: 2, Title: "middle", CreatedAt: "2024-02-01T08:00:00.000000Z"},
		{ID: 3, Title: "newest", CreatedAt: "2024-03-01T08:00:00.000000Z"},
	}
	store.mu.Lock()
	if err := store.save(fixed); err != nil {
		store.mu.Unlock()
		t.Fatal(err)
	}
	store.mu.Unlock()

	found := store.FindByIDs(ctx, map[int]struct{}{1: {}, 3: {}})
	if len(found) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(found))
	}
	if found[0].ID != 3 || found[1].ID != 1 {
		t.Errorf("expected newest first, got ids %d, %d", found[0].ID, found[1].ID)
	}
}
