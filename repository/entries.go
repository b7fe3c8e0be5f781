package repository

import (
	"context"
	"errors"
	"sort"

	"main/model"
)

var (
	// ErrEntryNotFound signals an update against an id that no longer
	// exists. Callers treat it as benign and redirect to the listing.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEmptyEntry is returned when both title and content are blank
	// after trimming.
	ErrEmptyEntry = errors.New("entry requires a title or content")
)

// EntryStore is the single persistence boundary for journal entries. Two
// implementations exist: a JSON-file store and a MongoDB store, chosen once
// at startup. Every mutation rewrites the full collection; there is no
// partial update.
type EntryStore interface {
	// ListAll returns the whole collection, newest first. A corrupt or
	// missing store reads as empty rather than failing.
	ListAll(ctx context.Context) []model.Entry

	// FindByIDs returns the entries whose id is in the set, newest first.
	FindByIDs(ctx context.Context, ids map[int]struct{}) []model.Entry

	// Create persists a new entry with id = count+1 and created_at = now
	// (UTC). Returns ErrEmptyEntry when there is nothing to persist.
	Create(ctx context.Context, title, content string) (*model.Entry, error)

	// Update replaces title and content of an existing entry; created_at
	// is never touched. Returns ErrEntryNotFound when the id is gone.
	Update(ctx context.Context, id int, title, content string) error

	// Delete removes the entry with the given id, if present.
	Delete(ctx context.Context, id int) error

	// DeleteBulk removes every entry whose id is in the set.
	DeleteBulk(ctx context.Context, ids map[int]struct{}) error
}

// RepairIDs renumbers duplicate entry ids. The first entry seen with a given
// id keeps it; later occurrences get the smallest unused id at or above a
// running counter. Input order is preserved, so the result is deterministic.
// The second return reports whether anything changed.
func RepairIDs(entries []model.Entry) ([]model.Entry, bool) {
	inUse := make(map[int]struct{}, len(entries))
	firstSeen := make(map[int]int, len(entries))

	for i, e := range entries {
		if _, dup := firstSeen[e.ID]; !dup {
			firstSeen[e.ID] = i
			inUse[e.ID] = struct{}{}
		}
	}

	changed := false
	next := 1
	for i := range entries {
		if firstSeen[entries[i].ID] == i {
			continue
		}
		for {
			if _, taken := inUse[next]; !taken {
				break
			}
			next++
		}
		entries[i].ID = next
		firstSeen[next] = i
		inUse[next] = struct{}{}
		next++
		changed = true
	}

	return entries, changed
}

// SortEntriesDesc orders entries newest first. Timestamps are compared as
// strings, which sorts correctly for the stored ISO-8601 format and still
// behaves sanely for unparseable values.
func SortEntriesDesc(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt > entries[j].CreatedAt
	})
}
