package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// GetItems returns approved listings with filters and pagination
func GetItems(c *gin.Context) {
	utils.LogInfo("GetItems called")

	page, limit := utils.GetPaginationParams(c)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Item{}).Where("status = ?", models.ItemStatusApproved)

	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if condition := c.Query("condition"); condition != "" && condition != "All" {
		query = query.Where("condition = ?", condition)
	}
	if size := c.Query("size"); size != "" && size != "All" {
		query = query.Where("size = ?", size)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	switch c.DefaultQuery("sortBy", "newest") {
	case "oldest":
		query = query.Order("created_at ASC")
	case "points-low":
		query = query.Order("points ASC")
	case "points-high":
		query = query.Order("points DESC")
	case "alphabetical":
		query = query.Order("title ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count items: %v", err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	var items []models.Item
	if err := query.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "avatar", "rating", "total_swaps", "city", "state", "country")
	}).Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch items: %v", err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	utils.LogInfo("Returning %d of %d items (page %d)", len(items), total, page)
	utils.SuccessWithPagination(c, "Items retrieved successfully", gin.H{"items": items}, total, page, limit)
}

// GetItemDetails returns a single listing and bumps its view counter
func GetItemDetails(c *gin.Context) {
	utils.LogInfo("GetItemDetails called")

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var item models.Item
	if err := config.DB.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "avatar", "rating", "total_swaps", "city", "state", "country")
	}).First(&item, itemID).Error; err != nil {
		utils.NotFound(c, "Item not found")
		return
	}

	if err := config.DB.Model(&models.Item{}).Where("id = ?", item.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		utils.LogError("Failed to increment views for item %d: %v", item.ID, err)
	}

	utils.Success(c, "Item retrieved successfully", gin.H{"item": item})
}
