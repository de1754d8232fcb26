package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/utils"
)

// UpdateProfileRequest represents the profile update body
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Avatar  string `json:"avatar"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// GetProfile returns the caller's profile
func GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"avatar":      user.Avatar,
		"bio":         user.Bio,
		"city":        user.City,
		"state":       user.State,
		"country":     user.Country,
		"points":      user.Points,
		"rating":      user.Rating,
		"total_swaps": user.TotalSwaps,
		"role":        user.Role,
		"created_at":  user.CreatedAt,
	})
}

// UpdateProfile updates the caller's profile fields
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Name != "" {
		if valid, msg := utils.ValidateName(req.Name); !valid {
			utils.BadRequest(c, "Invalid name", msg)
			return
		}
		user.Name = req.Name
	}
	if valid, msg := utils.ValidateStringLength(req.Bio, 0, 500); !valid {
		utils.BadRequest(c, "Bio must be at most 500 characters", msg)
		return
	}
	user.Bio = req.Bio
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.State != "" {
		user.State = req.State
	}
	if req.Country != "" {
		user.Country = req.Country
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"bio":    user.Bio,
		"avatar": user.Avatar,
	})
}
