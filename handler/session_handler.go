package handler

import (
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")

	sessions, err := sessionRepo.GetActiveSessions(userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func LogoutAllSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")

	currentSessionID := ""
	if value, exists := c.Get("session"); exists {
		if session, ok := value.(*model.Session); ok {
			currentSessionID = session.SessionID
		}
	}

	ended, err := sessionRepo.EndAllSessions(userID, currentSessionID)
	if err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	utils.Success(c, gin.H{
		"message":        "All other sessions ended",
		"sessions_ended": ended,
	})
}
