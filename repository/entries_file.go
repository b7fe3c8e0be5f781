package repository

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"

	"main/model"
	"main/utils"
)

// FileEntryStore keeps the journal in a single JSON file, rewritten in full
// on every mutation. Reads are fail-open: a missing or corrupt file loads as
// an empty collection so the app stays usable. The mutex only serializes
// access within this process; concurrent processes can still race on the
// count+1 id, which the repair pass corrects on the next load.
type FileEntryStore struct {
	path string
	mu   sync.Mutex
}

func NewFileEntryStore(path string) *FileEntryStore {
	return &FileEntryStore{path: path}
}

// load reads the collection in disk order and runs the id repair pass,
// persisting immediately if any id was rewritten. Callers must hold mu.
func (s *FileEntryStore) load() []model.Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.TrackError("storage", "entries_read_failed")
			log.Printf("Failed to read entries file %s: %v", s.path, err)
		}
		return []model.Entry{}
	}

	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		utils.TrackError("storage", "entries_corrupt")
		log.Printf("Entries file %s is not valid JSON, treating as empty: %v", s.path, err)
		return []model.Entry{}
	}

	entries, changed := RepairIDs(entries)
	if changed {
		log.Printf("Repaired duplicate entry ids in %s", s.path)
		if err := s.save(entries); err != nil {
			log.Printf("Failed to persist repaired entries: %v", err)
		}
	}

	return entries
}

// save rewrites the whole collection. Callers must hold mu.
func (s *FileEntryStore) save(entries []model.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		utils.TrackError("storage", "entries_write_failed")
		return err
	}
	return nil
}

func (s *FileEntryStore) ListAll(ctx context.Context) []model.Entry {
	timer := utils.TrackDBOperation("read", "entries")
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	SortEntriesDesc(entries)
	return entries
}

func (s *FileEntryStore) FindByIDs(ctx context.Context, ids map[int]struct{}) []model.Entry {
	timer := utils.TrackDBOperation("read", "entries")
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.Entry, 0, len(ids))
	for _, e := range s.load() {
		if _, ok := ids[e.ID]; ok {
			matched = append(matched, e)
		}
	}
	SortEntriesDesc(matched)
	return matched
}

func (s *FileEntryStore) Create(ctx context.Context, title, content string) (*model.Entry, error) {
	timer := utils.TrackDBOperation("insert", "entries")
	defer timer.ObserveDuration()

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" && content == "" {
		return nil, ErrEmptyEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entry := model.Entry{
		ID:        len(entries) + 1,
		Title:     title,
		Content:   content,
		CreatedAt: model.NowEntryTime(),
	}
	entries = append(entries, entry)

	if err := s.save(entries); err != nil {
		return nil, err
	}
	utils.TrackEntryOperation("create")
	return &entry, nil
}

func (s *FileEntryStore) Update(ctx context.Context, id int, title, content string) error {
	timer := utils.TrackDBOperation("update", "entries")
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Title = strings.TrimSpace(title)
			entries[i].Content = strings.TrimSpace(content)
			if err := s.save(entries); err != nil {
				return err
			}
			utils.TrackEntryOperation("update")
			return nil
		}
	}
	return ErrEntryNotFound
}

func (s *FileEntryStore) Delete(ctx context.Context, id int) error {
	timer := utils.TrackDBOperation("delete", "entries")
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.save(kept); err != nil {
		return err
	}
	utils.TrackEntryOperation("delete")
	return nil
}

func (s *FileEntryStore) DeleteBulk(ctx context.Context, ids map[int]struct{}) error {
	timer := utils.TrackDBOperation("delete", "entries")
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if _, ok := ids[e.ID]; !ok {
			kept = append(kept, e)
		}
	}

	if err := s.save(kept); err != nil {
		return err
	}
	utils.TrackEntryOperation("delete_bulk")
	return nil
}
