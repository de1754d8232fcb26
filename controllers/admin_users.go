package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// GetUsers returns a paginated user list for the admin dashboard
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")

	page, limit := utils.GetPaginationParams(c)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	formatted := make([]gin.H, len(users))
	for i, u := range users {
		formatted[i] = gin.H{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"points":      u.Points,
			"total_swaps": u.TotalSwaps,
			"role":        u.Role,
			"status":      u.Status,
			"created_at":  u.CreatedAt,
		}
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{"users": formatted}, total, page, limit)
}

// SuspendUser sets a user's account status to suspended
func SuspendUser(c *gin.Context) {
	setUserStatus(c, models.UserStatusSuspended, "User suspended successfully")
}

// ReinstateUser sets a user's account status back to active
func ReinstateUser(c *gin.Context) {
	setUserStatus(c, models.UserStatusActive, "User reinstated successfully")
}

// BanUser sets a user's account status to banned
func BanUser(c *gin.Context) {
	setUserStatus(c, models.UserStatusBanned, "User banned successfully")
}

func setUserStatus(c *gin.Context, status, message string) {
	admin, ok := getCurrentUser(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	if uint(userID) == admin.ID {
		utils.BadRequest(c, "You cannot change your own account status", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("status", status).Error; err != nil {
		utils.LogError("Failed to set status %s for user %d: %v", status, user.ID, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	utils.LogInfo("Admin %d set user %d status to %s", admin.ID, user.ID, status)
	utils.Success(c, message, gin.H{
		"id":     user.ID,
		"status": status,
	})
}
