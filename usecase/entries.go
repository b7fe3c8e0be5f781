package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"main/model"
	"main/repository"
)

// DefaultRecentLimit is the fixed recent-N window of the home listing.
const DefaultRecentLimit = 10

const (
	maxTitleLength   = 200
	maxContentLength = 10000
)

type EntriesService struct {
	Store repository.EntryStore
}

func (s *EntriesService) validateEntry(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" && content == "" {
		return "", "", repository.ErrEmptyEntry
	}
	// Limits are in characters, matching the request binding rules.
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", "", errors.New("entry title exceeds maximum length")
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return "", "", errors.New("entry content exceeds maximum length")
	}

	return title, content, nil
}

// GetRecent returns the newest entries, capped at limit (DefaultRecentLimit
// when limit <= 0), decorated for display.
func (s *EntriesService) GetRecent(ctx context.Context, limit int) []model.Entry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	entries := s.Store.ListAll(ctx)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return Decorate(entries)
}

// GetFiltered returns entries matching the preset and bounds, decorated for
// display.
func (s *EntriesService) GetFiltered(ctx context.Context, preset, start, end string) []model.Entry {
	entries := s.Store.ListAll(ctx)
	entries = FilterByRange(entries, preset, start, end, time.Now().UTC())
	return Decorate(entries)
}

func (s *EntriesService) CreateEntry(ctx context.Context, title, content string) (*model.Entry, error) {
	title, content, err := s.validateEntry(title, content)
	if err != nil {
		return nil, err
	}
	return s.Store.Create(ctx, title, content)
}

func (s *EntriesService) UpdateEntry(ctx context.Context, id int, title, content string) error {
	title, content, err := s.validateEntry(title, content)
	if err != nil {
		return err
	}
	return s.Store.Update(ctx, id, title, content)
}

func (s *EntriesService) DeleteEntry(ctx context.Context, id int) error {
	return s.Store.Delete(ctx, id)
}

// DeleteSelected removes every entry named by the selection. Deleting an
// already-deleted selection is a no-op.
func (s *EntriesService) DeleteSelected(ctx context.Context, selected []string) error {
	ids := ParseSelection(selected)
	if len(ids) == 0 {
		return nil
	}
	return s.Store.DeleteBulk(ctx, ids)
}

// SelectEntries resolves a selection to its entries, newest first, ready to
// hand to the summarizer.
func (s *EntriesService) SelectEntries(ctx context.Context, selected []string) []model.Entry {
	ids := ParseSelection(selected)
	if len(ids) == 0 {
		return []model.Entry{}
	}
	return s.Store.FindByIDs(ctx, ids)
}

// ParseSelection converts string-encoded ids from a form or JSON body into
// an id set. Non-numeric values are discarded silently; duplicates collapse.
func ParseSelection(values []string) map[int]struct{} {
	ids := make(map[int]struct{}, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}
