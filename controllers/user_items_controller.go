package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// ListMyItems returns the caller's own listings in every state
func ListMyItems(c *gin.Context) {
	utils.LogInfo("ListMyItems called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	page, limit := utils.GetPaginationParams(c)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Item{}).Where("owner_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count items for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	var items []models.Item
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch items for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Items retrieved successfully", gin.H{"items": items}, total, page, limit)
}
