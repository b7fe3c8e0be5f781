package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"main/llm"
	"main/model"
	"main/utils"
)

const (
	summaryPersona  = "You are a thoughtful journal assistant. Create natural, paraphrased summaries."
	insightsPersona = "You are a thoughtful journal assistant. Analyze sentiment and extract key themes."

	summaryPromptFormat = `Summarize the following journal entries in 2-3 sentences.
Paraphrase naturally and capture the main themes and emotions.

Journal entries:
%s

Summary:`

	insightsPromptFormat = `Analyze these journal entries and provide:
1. Overall sentiment (positive, neutral, negative, mixed)
2. 2-3 key insights or patterns

Journal entries:
%s

Respond in this exact format:
Sentiment: [sentiment]
Insights:
- [insight 1]
- [insight 2]
- [insight 3]`
)

// Fixed advisory strings for the fail-soft paths. The caller only ever sees
// these (plus a truncated error excerpt); raw provider errors go to the log.
const (
	msgNotConfiguredSummary  = "Azure OpenAI not configured. Please set AZURE_OPENAI_KEY, AZURE_OPENAI_ENDPOINT, and AZURE_OPENAI_MODEL_NAME."
	msgNotConfiguredInsights = "Azure OpenAI not configured. Cannot extract insights."
	msgUnavailable           = "Service temporarily unavailable. Please try again later."
	msgSummaryFailed         = "Error generating summary. Please try again."
	msgInsightsFailed        = "Error extracting insights. Please try again."
	msgNoInsights            = "No specific insights extracted."
)

// SummaryService builds prompts from selected entries, runs the two model
// calls and parses the loosely-structured answers. It is strictly
// fail-soft: every failure maps to a fixed advisory result, never an error.
type SummaryService struct {
	Client llm.Completer
}

// BuildEntriesText concatenates entries as "{title}. {content}" blocks
// separated by blank lines, in the order given (newest first from the
// selection fetch).
func BuildEntriesText(entries []model.Entry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, fmt.Sprintf("%s. %s", e.Title, e.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// Summarize produces the summary, sentiment and insights for the selected
// entries. The two model calls fail independently; a dead provider yields
// the advisory strings with sentiment "unknown".
func (s *SummaryService) Summarize(ctx context.Context, entries []model.Entry) model.SummaryResult {
	text := BuildEntriesText(entries)

	result := model.SummaryResult{
		Summary:   s.summarize(ctx, text),
		Sentiment: model.SentimentUnknown,
	}
	result.Sentiment, result.Insights = s.insights(ctx, text)
	return result
}

func (s *SummaryService) summarize(ctx context.Context, text string) string {
	if s.Client == nil {
		log.Println("Summary requested but Azure OpenAI is not configured")
		return msgNotConfiguredSummary
	}

	summary, err := s.Client.Complete(ctx, llm.ChatRequest{
		System:      summaryPersona,
		Prompt:      fmt.Sprintf(summaryPromptFormat, text),
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		utils.TrackError("llm", "summary_failed")
		log.Printf("Summary generation failed: %v", err)

		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			return msgNotConfiguredSummary
		case errors.Is(err, llm.ErrUnavailable):
			return msgUnavailable
		}
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("Error generating summary: %s", truncate(apiErr.Message, 100))
		}
		return msgSummaryFailed
	}

	return summary
}

func (s *SummaryService) insights(ctx context.Context, text string) (string, []string) {
	if s.Client == nil {
		log.Println("Insights requested but Azure OpenAI is not configured")
		return model.SentimentUnknown, []string{msgNotConfiguredInsights}
	}

	raw, err := s.Client.Complete(ctx, llm.ChatRequest{
		System:      insightsPersona,
		Prompt:      fmt.Sprintf(insightsPromptFormat, text),
		Temperature: 0.5,
		MaxTokens:   300,
	})
	if err != nil {
		utils.TrackError("llm", "insights_failed")
		log.Printf("Insights extraction failed: %v", err)

		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			return model.SentimentUnknown, []string{msgNotConfiguredInsights}
		case errors.Is(err, llm.ErrUnavailable):
			return model.SentimentUnknown, []string{msgUnavailable}
		}
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			return model.SentimentUnknown,
				[]string{fmt.Sprintf("Error extracting insights: %s", truncate(apiErr.Message, 50))}
		}
		return model.SentimentUnknown, []string{msgInsightsFailed}
	}

	return parseInsights(raw)
}

// parseInsights scans the model's answer line by line: "Sentiment:" sets the
// label, "- " lines collect as insights in order. Anything missing falls
// back to "unknown" / a single placeholder insight.
func parseInsights(raw string) (string, []string) {
	sentiment := model.SentimentUnknown
	var insights []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Sentiment:"):
			if label := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Sentiment:"))); label != "" {
				sentiment = label
			}
		case strings.HasPrefix(line, "- "):
			insights = append(insights, strings.TrimSpace(strings.TrimPrefix(line, "- ")))
		}
	}

	if len(insights) == 0 {
		insights = []string{msgNoInsights}
	}
	return sentiment, insights
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
