package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"main/llm"
	"main/model"
	"main/repository"
	"main/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	os.Setenv("GO_ENV", "test")
	gin.SetMode(gin.TestMode)
}

type scriptedCompleter struct {
	reply string
	err   error
}

func (s *scriptedCompleter) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	return s.reply, s.err
}

func setupEntriesRouter(t *testing.T, completer llm.Completer) (*gin.Engine, *usecase.EntriesService) {
	return setupEntriesRouterAt(t, filepath.Join(t.TempDir(), "journal.json"), completer)
}

func setupEntriesRouterAt(t *testing.T, path string, completer llm.Completer) (*gin.Engine, *usecase.EntriesService) {
	t.Helper()

	store := repository.NewFileEntryStore(path)
	entriesService := &usecase.EntriesService{Store: store}
	summaryService := &usecase.SummaryService{Client: completer}

	router := gin.New()
	router.GET("/entries", func(c *gin.Context) {
		GetEntriesHandler(c, entriesService)
	})
	router.GET("/entries/past", func(c *gin.Context) {
		GetPastEntriesHandler(c, entriesService)
	})
	router.POST("/entries", func(c *gin.Context) {
		CreateEntryHandler(c, entriesService)
	})
	router.PUT("/entries/:id", func(c *gin.Context) {
		UpdateEntryHandler(c, entriesService)
	})
	router.DELETE("/entries/:id", func(c *gin.Context) {
		DeleteEntryHandler(c, entriesService)
	})
	router.POST("/entries/bulk-delete", func(c *gin.Context) {
		BulkDeleteHandler(c, entriesService)
	})
	router.POST("/entries/summarize", func(c *gin.Context) {
		SummarizeEntriesHandler(c, entriesService, summaryService)
	})

	return router, entriesService
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndListEntries(t *testing.T) {
	router, _ := setupEntriesRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/entries", gin.H{
		"title":   "First day",
		"content": "Started the journal.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/entries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Entries []model.Entry `json:"entries"`
			Count   int           `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Count != 1 || resp.Data.Entries[0].Title != "First day" {
		t.Errorf("unexpected listing: %+v", resp.Data)
	}
	if resp.Data.Entries[0].DisplayTime == "" {
		t.Errorf("entries should carry a display_time")
	}
}

func TestCreateEmptyEntryIsSkipped(t *testing.T) {
	router, svc := setupEntriesRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/entries", gin.H{"title": " ", "content": ""})
	if w.Code != http.StatusOK {
		t.Fatalf("blank entry should be a benign skip, status = %d", w.Code)
	}
	if got := len(svc.Store.ListAll(context.Background())); got != 0 {
		t.Errorf("blank entry was persisted")
	}
}

func TestUpdateVanishedEntryIsBenign(t *testing.T) {
	router, _ := setupEntriesRouter(t, nil)

	w := doJSON(t, router, http.MethodPut, "/entries/99", gin.H{
		"title":   "edited",
		"content": "text",
	})
	if w.Code != http.StatusOK {
		t.Errorf("editing a vanished entry should not error, status = %d", w.Code)
	}
}

func TestBulkDeleteDiscardsMalformedIDs(t *testing.T) {
	router, svc := setupEntriesRouter(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Store.Create(ctx, "entry", "content"); err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, router, http.MethodPost, "/entries/bulk-delete", gin.H{
		"selected": []string{"1", "3", "oops"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk delete status = %d", w.Code)
	}

	remaining := svc.Store.ListAll(ctx)
	if len(remaining) != 1 || remaining[0].ID != 2 {
		t.Errorf("expected only entry 2 to remain, got %v", remaining)
	}
}

func TestSummarizeEndpointFailSoft(t *testing.T) {
	router, svc := setupEntriesRouter(t, &scriptedCompleter{err: llm.ErrUnavailable})

	if _, err := svc.Store.Create(context.Background(), "entry", "content"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodPost, "/entries/summarize", gin.H{
		"selected": []string{"1"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("summarize must stay 200 on provider failure, status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Sentiment string   `json:"sentiment"`
			Insights  []string `json:"insights"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Sentiment != model.SentimentUnknown || len(resp.Data.Insights) != 1 {
		t.Errorf("expected degraded result, got %+v", resp.Data)
	}
}

func TestSummarizeRejectsEmptySelection(t *testing.T) {
	router, _ := setupEntriesRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/entries/summarize", gin.H{
		"selected": []string{"nope"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty selection should be rejected, status = %d", w.Code)
	}
}

func TestPastEntriesFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	seed := []model.Entry{
		{ID: 1, Title: "jan", CreatedAt: "2024-01-01T10:00:00.000000Z"},
		{ID: 2, Title: "feb", CreatedAt: "2024-02-01T10:00:00.000000Z"},
		{ID: 3, Title: "mar", CreatedAt: "2024-03-01T10:00:00.000000Z"},
	}
	data, err := json.Marshal(seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	router, _ := setupEntriesRouterAt(t, path, nil)

	w := doJSON(t, router, http.MethodGet,
		"/entries/past?preset=custom&start=2024-01-15&end=2024-02-15", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("past status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Entries []model.Entry `json:"entries"`
			Preset  string        `json:"preset"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Entries) != 1 || resp.Data.Entries[0].ID != 2 {
		t.Errorf("expected only the february entry, got %+v", resp.Data.Entries)
	}
	if resp.Data.Preset != "custom" {
		t.Errorf("preset echoed as %q", resp.Data.Preset)
	}
}
