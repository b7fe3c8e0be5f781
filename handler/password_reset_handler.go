package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestPasswordResetHandler issues a 24h single-use token. The response
// is the same whether or not the email exists, so accounts cannot be
// enumerated.
func RequestPasswordResetHandler(c *gin.Context, userRepo *repository.UserRepo, tokenRepo *repository.ResetTokenRepo) {
	var req dto.ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user, err := userRepo.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.TrackError("auth", "reset_lookup")
		utils.InternalError(c, "Failed to process reset request")
		return
	}

	if user != nil {
		token, err := tokenRepo.CreateToken(c.Request.Context(), user.UserID, uuid.New().String())
		if err != nil {
			utils.TrackError("auth", "reset_token_creation")
			utils.InternalError(c, "Failed to process reset request")
			return
		}
		// Delivery is a mailer concern; log until one is wired up.
		log.Printf("Password reset token issued for %s, expires %s", user.Email, token.ExpiresAt)
	}

	utils.Success(c, gin.H{"message": "If the address is registered, a reset link has been sent"})
}

func ConfirmPasswordResetHandler(c *gin.Context, userRepo *repository.UserRepo, tokenRepo *repository.ResetTokenRepo) {
	var req dto.ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	token, err := tokenRepo.ConsumeToken(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenInvalid) {
			utils.TrackAuthAttempt("failure", "reset_token")
			utils.BadRequest(c, "Reset token is invalid or expired")
			return
		}
		utils.TrackError("auth", "reset_token_lookup")
		utils.InternalError(c, "Failed to reset password")
		return
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := userRepo.UpdatePassword(c.Request.Context(), token.UserID, hashed); err != nil {
		utils.TrackError("auth", "password_update")
		utils.InternalError(c, "Failed to reset password")
		return
	}

	utils.TrackAuthAttempt("success", "password_reset")
	utils.Success(c, gin.H{"message": "Password has been reset"})
}
