package model

import (
	"strings"
	"time"
)

// Entry timestamps are stored as strings so that a record with a mangled
// created_at still loads and displays instead of being dropped.
const (
	EntryTimeLayout   = "2006-01-02T15:04:05.000000Z"
	DisplayTimeLayout = "2006-01-02 15:04:05"
)

type Entry struct {
	ID          int    `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Content     string `bson:"content" json:"content"`
	CreatedAt   string `bson:"created_at" json:"created_at"`
	DisplayTime string `bson:"-" json:"display_time,omitempty"`
}

// NowEntryTime returns the current UTC instant in the persisted format.
func NowEntryTime() string {
	return time.Now().UTC().Format(EntryTimeLayout)
}

// ParseEntryTime parses a stored created_at value or a user-supplied bound.
// The trailing Z is stripped first; values are naive UTC.
func ParseEntryTime(value string) (time.Time, error) {
	s := strings.TrimSuffix(strings.TrimSpace(value), "Z")

	layouts := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}

	var err error
	for _, layout := range layouts {
		var ts time.Time
		if ts, err = time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}

// CreatedTime parses the entry's own timestamp.
func (e *Entry) CreatedTime() (time.Time, error) {
	return ParseEntryTime(e.CreatedAt)
}
