package handler

import (
	"errors"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration_validation")
		utils.BadRequest(c, "Invalid registration details")
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.TrackAuthAttempt("failure", "email_taken")
			utils.Conflict(c, "Email is already registered")
			return
		}
		utils.TrackAuthAttempt("failure", "registration")
		utils.BadRequest(c, err.Error())
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"user_id": user.UserID,
		"email":   user.Email,
		"name":    user.Name,
	})
}
