package handler

import (
	"log"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	token := c.GetString("accessToken")
	if token != "" {
		if err := services.BlacklistToken(token); err != nil {
			log.Printf("Failed to blacklist token: %v", err)
		}
	}

	if value, exists := c.Get("session"); exists {
		if session, ok := value.(*model.Session); ok {
			if err := sessionRepo.DeleteSession(session.SessionID); err != nil {
				log.Printf("Failed to delete session %s: %v", session.SessionID, err)
			}
		}
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
