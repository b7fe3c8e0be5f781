package dto

import "main/model"

type CreateEntryRequest struct {
	Title   string `json:"title" binding:"max=200"`
	Content string `json:"content" binding:"max=10000"`
}

type UpdateEntryRequest struct {
	Title   string `json:"title" binding:"max=200"`
	Content string `json:"content" binding:"max=10000"`
}

// Selected ids arrive as strings straight from form/JSON input; non-numeric
// values are dropped during parsing rather than rejected.
type BulkDeleteRequest struct {
	Selected []string `json:"selected" binding:"required"`
}

type SummarizeRequest struct {
	Selected []string `json:"selected" binding:"required"`
}

type EntriesResponse struct {
	Entries []model.Entry `json:"entries"`
	Count   int           `json:"count"`
}

type FilteredEntriesResponse struct {
	Entries []model.Entry `json:"entries"`
	Count   int           `json:"count"`
	Preset  string        `json:"preset"`
	Start   string        `json:"start,omitempty"`
	End     string        `json:"end,omitempty"`
}

type SummarizeResponse struct {
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Insights  []string `json:"insights"`
	Count     int      `json:"entry_count"`
}
