package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// getCurrentUser pulls the authenticated user placed in the context by
// the auth middleware.
func getCurrentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// respondServiceError translates swap engine errors to HTTP responses
func respondServiceError(c *gin.Context, err error) {
	var insufficient *services.InsufficientPointsError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Forbidden(c, "You are not allowed to perform this action")
	case errors.Is(err, services.ErrInvalidState):
		utils.Conflict(c, "The request is no longer in a state that allows this action", nil)
	case errors.As(err, &insufficient):
		utils.ValidationError(c, "Insufficient points", gin.H{
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	default:
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}
