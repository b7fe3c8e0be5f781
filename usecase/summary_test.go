package usecase

import (
	"context"
	"strings"
	"testing"

	"main/llm"
	"main/model"
)

// fakeCompleter scripts the two model calls by matching on the persona.
type fakeCompleter struct {
	summaryReply  string
	insightsReply string
	err           error
	requests      []llm.ChatRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if req.System == summaryPersona {
		return f.summaryReply, nil
	}
	return f.insightsReply, nil
}

func sampleEntries() []model.Entry {
	return []model.Entry{
		{ID: 2, Title: "Tuesday", Content: "Long day at work.", CreatedAt: "2024-01-02T08:00:00.000000Z"},
		{ID: 1, Title: "Monday", Content: "Went for a run.", CreatedAt: "2024-01-01T08:00:00.000000Z"},
	}
}

func TestBuildEntriesText(t *testing.T) {
	text := BuildEntriesText(sampleEntries())

	want := "Tuesday. Long day at work.\n\nMonday. Went for a run."
	if text != want {
		t.Errorf("entries text = %q, want %q", text, want)
	}
}

func TestSummarizeSuccess(t *testing.T) {
	fake := &fakeCompleter{
		summaryReply:  "A busy but balanced stretch.",
		insightsReply: "Sentiment: Positive\nInsights:\n- Work is demanding\n- Exercise helps",
	}
	svc := &SummaryService{Client: fake}

	result := svc.Summarize(context.Background(), sampleEntries())

	if result.Summary != "A busy but balanced stretch." {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want lower-cased positive", result.Sentiment)
	}
	if len(result.Insights) != 2 || result.Insights[0] != "Work is demanding" {
		t.Errorf("insights = %v", result.Insights)
	}

	if len(fake.requests) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(fake.requests))
	}
	if fake.requests[0].Temperature != 0.7 || fake.requests[0].MaxTokens != 200 {
		t.Errorf("summary call params: %+v", fake.requests[0])
	}
	if fake.requests[1].Temperature != 0.5 || fake.requests[1].MaxTokens != 300 {
		t.Errorf("insights call params: %+v", fake.requests[1])
	}
	if !strings.Contains(fake.requests[0].Prompt, "Tuesday. Long day at work.") {
		t.Errorf("prompt is missing entry text")
	}
}

func TestSummarizeNoInsightLines(t *testing.T) {
	fake := &fakeCompleter{
		summaryReply:  "Fine.",
		insightsReply: "Sentiment: neutral\nnothing else useful",
	}
	svc := &SummaryService{Client: fake}

	result := svc.Summarize(context.Background(), sampleEntries())

	if result.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %q", result.Sentiment)
	}
	if len(result.Insights) != 1 || result.Insights[0] != msgNoInsights {
		t.Errorf("expected placeholder insight, got %v", result.Insights)
	}
}

func TestSummarizeMissingSentiment(t *testing.T) {
	fake := &fakeCompleter{
		summaryReply:  "Fine.",
		insightsReply: "- only an insight",
	}
	svc := &SummaryService{Client: fake}

	result := svc.Summarize(context.Background(), sampleEntries())

	if result.Sentiment != model.SentimentUnknown {
		t.Errorf("sentiment = %q, want unknown", result.Sentiment)
	}
	if len(result.Insights) != 1 || result.Insights[0] != "only an insight" {
		t.Errorf("insights = %v", result.Insights)
	}
}

func TestSummarizeProviderUnavailable(t *testing.T) {
	fake := &fakeCompleter{err: llm.ErrUnavailable}
	svc := &SummaryService{Client: fake}

	result := svc.Summarize(context.Background(), sampleEntries())

	if result.Summary != msgUnavailable {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Sentiment != model.SentimentUnknown {
		t.Errorf("sentiment = %q, want unknown", result.Sentiment)
	}
	if len(result.Insights) != 1 {
		t.Fatalf("expected exactly one advisory insight, got %d", len(result.Insights))
	}
}

func TestSummarizeNotConfigured(t *testing.T) {
	svc := &SummaryService{}

	result := svc.Summarize(context.Background(), sampleEntries())

	if result.Summary != msgNotConfiguredSummary {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Sentiment != model.SentimentUnknown {
		t.Errorf("sentiment = %q", result.Sentiment)
	}
	if len(result.Insights) != 1 || result.Insights[0] != msgNotConfiguredInsights {
		t.Errorf("insights = %v", result.Insights)
	}
}

func TestSummarizeAPIErrorTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	fake := &fakeCompleter{err: &llm.APIError{StatusCode: 400, Message: long}}
	svc := &SummaryService{Client: fake}

	result := svc.Summarize(context.Background(), sampleEntries())

	if !strings.HasPrefix(result.Summary, "Error generating summary: ") {
		t.Errorf("summary = %q", result.Summary)
	}
	if len(result.Summary) > len("Error generating summary: ")+100 {
		t.Errorf("error excerpt not truncated to 100 chars: %d", len(result.Summary))
	}
	if len(result.Insights) != 1 ||
		len(result.Insights[0]) > len("Error extracting insights: ")+50 {
		t.Errorf("insight excerpt not truncated to 50 chars: %v", result.Insights)
	}
}
