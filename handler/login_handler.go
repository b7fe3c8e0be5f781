package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const MaxActiveSessions = 5

func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utils.TrackAuthAttempt("failure", "invalid_credentials")
			utils.Unauthorized(c, "Invalid credentials")
			return
		}
		utils.TrackError("auth", "user_lookup")
		utils.InternalError(c, "Login failed")
		return
	}

	// Evict the stalest session once the user is at the limit.
	activeCount, err := sessionRepo.CountActiveSessions(user.UserID)
	if err != nil {
		utils.TrackError("auth", "session_count")
		utils.InternalError(c, "Login failed")
		return
	}
	if activeCount >= MaxActiveSessions {
		if err := sessionRepo.EndLeastActiveSession(user.UserID); err != nil {
			log.Printf("Failed to end least active session for %s: %v", user.UserID, err)
		}
	}

	if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		utils.TrackError("auth", "session_creation")
		utils.InternalError(c, "Failed to create session")
		return
	}

	token, err := services.GenerateJWT(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"user_id": user.UserID,
			"email":   user.Email,
			"name":    user.Name,
		},
	})
}
