package handler

import (
	"errors"
	"strconv"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetEntriesHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries := entriesService.GetRecent(c.Request.Context(), limit)

	utils.Success(c, dto.EntriesResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

func GetPastEntriesHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	preset := c.DefaultQuery("preset", usecase.PresetAll)
	start := c.Query("start")
	end := c.Query("end")

	entries := entriesService.GetFiltered(c.Request.Context(), preset, start, end)

	utils.Success(c, dto.FilteredEntriesResponse{
		Entries: entries,
		Count:   len(entries),
		Preset:  preset,
		Start:   start,
		End:     end,
	})
}

func CreateEntryHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := entriesService.CreateEntry(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		// An all-blank entry is skipped, not failed.
		if errors.Is(err, repository.ErrEmptyEntry) {
			utils.Success(c, gin.H{"message": "Nothing to save"})
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, entry)
}

func UpdateEntryHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid entry id")
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := entriesService.UpdateEntry(c.Request.Context(), id, req.Title, req.Content); err != nil {
		// Editing a vanished entry is benign; the client goes back to
		// the listing either way.
		if errors.Is(err, repository.ErrEntryNotFound) {
			utils.Success(c, gin.H{"message": "Entry no longer exists"})
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Entry updated successfully"})
}

func DeleteEntryHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid entry id")
		return
	}

	if err := entriesService.DeleteEntry(c.Request.Context(), id); err != nil {
		utils.InternalError(c, "Failed to delete entry")
		return
	}

	utils.Success(c, gin.H{"message": "Entry deleted successfully"})
}

func BulkDeleteHandler(c *gin.Context, entriesService *usecase.EntriesService) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := entriesService.DeleteSelected(c.Request.Context(), req.Selected); err != nil {
		utils.InternalError(c, "Failed to delete entries")
		return
	}

	utils.Success(c, gin.H{"message": "Selected entries deleted"})
}
