package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SummarizeEntriesHandler runs the AI summary over a selection of entries.
// Summarization is fail-soft: a dead or unconfigured provider still yields
// a 200 with advisory text, never an error page.
func SummarizeEntriesHandler(c *gin.Context, entriesService *usecase.EntriesService, summaryService *usecase.SummaryService) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	entries := entriesService.SelectEntries(c.Request.Context(), req.Selected)
	if len(entries) == 0 {
		utils.BadRequest(c, "No entries selected")
		return
	}

	result := summaryService.Summarize(c.Request.Context(), entries)

	status := "ok"
	if result.Sentiment == model.SentimentUnknown {
		status = "degraded"
	}
	utils.TrackSummaryRequest(status)

	utils.Success(c, dto.SummarizeResponse{
		Summary:   result.Summary,
		Sentiment: result.Sentiment,
		Insights:  result.Insights,
		Count:     len(entries),
	})
}
