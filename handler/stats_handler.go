package handler

import (
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	entriesService *usecase.EntriesService
	sessionRepo    *repository.SessionRepo
}

func NewStatsHandler(entriesService *usecase.EntriesService, sessionRepo *repository.SessionRepo) *StatsHandler {
	return &StatsHandler{
		entriesService: entriesService,
		sessionRepo:    sessionRepo,
	}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.GetString("userID")
	ctx := c.Request.Context()

	var stats model.UserStats

	all := h.entriesService.Store.ListAll(ctx)
	now := time.Now().UTC()
	stats.EntriesStats.Total = len(all)
	stats.EntriesStats.PastWeek = len(usecase.FilterByRange(all, usecase.PresetWeek, "", "", now))
	stats.EntriesStats.PastMonth = len(usecase.FilterByRange(all, usecase.PresetMonth, "", "", now))

	if h.sessionRepo != nil {
		active, err := h.sessionRepo.CountActiveSessions(userID)
		if err != nil {
			log.Printf("Error counting sessions: %v", err)
		} else {
			stats.SessionStats.Active = active
		}
	}

	stats.SystemStats.CPUUsage = utils.GetCPUUsage()
	stats.SystemStats.MemoryUsage = utils.GetMemoryUsage()
	stats.GeneratedAt = now

	utils.Success(c, stats)
}
