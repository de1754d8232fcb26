package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// CreateItemRequest represents the listing submission body
type CreateItemRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Type        string   `json:"type"`
	Size        string   `json:"size" binding:"required"`
	Condition   string   `json:"condition" binding:"required"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images" binding:"required"`
}

// UpdateItemRequest represents the listing update body
type UpdateItemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Condition   string   `json:"condition"`
	Tags        []string `json:"tags"`
}

// CreateItem submits a new listing. Listings start in pending state and
// only become visible once an admin approves them. The point value is
// derived from the condition tier.
func CreateItem(c *gin.Context) {
	utils.LogInfo("CreateItem called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid item submission from user %d: %v", user.ID, err)
		utils.BadRequest(c, "All required fields must be provided", err.Error())
		return
	}

	if valid, msg := utils.ValidateStringLength(req.Title, 1, 100); !valid {
		utils.BadRequest(c, "Title must be between 1 and 100 characters", msg)
		return
	}
	if valid, msg := utils.ValidateStringLength(req.Description, 1, 1000); !valid {
		utils.BadRequest(c, "Description must be between 1 and 1000 characters", msg)
		return
	}
	if valid, msg := utils.ValidateCondition(req.Condition); !valid {
		utils.BadRequest(c, "Invalid condition", msg)
		return
	}
	if valid, msg := utils.ValidateSize(req.Size); !valid {
		utils.BadRequest(c, "Invalid size", msg)
		return
	}
	if len(req.Images) < 1 || len(req.Images) > 5 {
		utils.BadRequest(c, "Items must have between 1 and 5 images", nil)
		return
	}

	item := models.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Size:        req.Size,
		Condition:   req.Condition,
		Points:      services.PointsForCondition(req.Condition),
		Tags:        strings.Join(req.Tags, ","),
		Images:      strings.Join(req.Images, ","),
		Status:      models.ItemStatusPending,
		OwnerID:     user.ID,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to create item for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create item", err.Error())
		return
	}

	utils.LogInfo("Item %d submitted by user %d (condition=%s, points=%d)",
		item.ID, user.ID, item.Condition, item.Points)
	utils.Created(c, "Item submitted for review. It will appear in the marketplace once approved!", gin.H{
		"id":               item.ID,
		"title":            item.Title,
		"status":           item.Status,
		"potential_points": item.Points,
	})
}

// UpdateItem edits a pending listing. The point value is recomputed
// whenever the condition tier changes.
func UpdateItem(c *gin.Context) {
	utils.LogInfo("UpdateItem called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var item models.Item
	if err := config.DB.Where("id = ? AND owner_id = ?", itemID, user.ID).First(&item).Error; err != nil {
		utils.LogError("Item not found - Item ID: %d, User ID: %d", itemID, user.ID)
		utils.NotFound(c, "Item not found")
		return
	}

	if item.Status != models.ItemStatusPending {
		utils.Conflict(c, "Only pending items can be edited", nil)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Condition != "" && req.Condition != item.Condition {
		if valid, msg := utils.ValidateCondition(req.Condition); !valid {
			utils.BadRequest(c, "Invalid condition", msg)
			return
		}
		item.Condition = req.Condition
		item.Points = services.PointsForCondition(req.Condition)
	}
	if req.Tags != nil {
		item.Tags = strings.Join(req.Tags, ",")
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.LogError("Failed to update item %d: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update item", err.Error())
		return
	}

	utils.Success(c, "Item updated successfully", gin.H{
		"id":        item.ID,
		"title":     item.Title,
		"condition": item.Condition,
		"points":    item.Points,
		"status":    item.Status,
	})
}

// MarkItemUnavailable pulls an approved listing from the marketplace
func MarkItemUnavailable(c *gin.Context) {
	utils.LogInfo("MarkItemUnavailable called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var item models.Item
	if err := config.DB.Where("id = ? AND owner_id = ?", itemID, user.ID).First(&item).Error; err != nil {
		utils.NotFound(c, "Item not found")
		return
	}

	if item.Status != models.ItemStatusApproved {
		utils.Conflict(c, "Only approved items can be marked unavailable", nil)
		return
	}

	if err := config.DB.Model(&item).Update("status", models.ItemStatusUnavailable).Error; err != nil {
		utils.LogError("Failed to mark item %d unavailable: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update item", err.Error())
		return
	}

	utils.Success(c, "Item marked unavailable", gin.H{
		"id":     item.ID,
		"status": models.ItemStatusUnavailable,
	})
}
