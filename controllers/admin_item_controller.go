package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// RejectItemRequest carries the optional rejection reason
type RejectItemRequest struct {
	Reason string `json:"reason"`
}

// ListItemsForReview returns listings by status for the admin queue,
// pending first by default.
func ListItemsForReview(c *gin.Context) {
	utils.LogInfo("ListItemsForReview called")

	status := c.DefaultQuery("status", models.ItemStatusPending)
	page, limit := utils.GetPaginationParams(c)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Item{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count items for review: %v", err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	var items []models.Item
	if err := query.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "avatar", "city", "state", "country")
	}).Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch items for review: %v", err)
		utils.InternalServerError(c, "Failed to fetch items", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Items retrieved successfully", gin.H{"items": items}, total, page, limit)
}

// ApproveItem approves a pending listing and pays the listing owner
// the item's point value.
func ApproveItem(c *gin.Context) {
	utils.LogInfo("ApproveItem called")
	admin, ok := getCurrentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	item, err := services.ApproveItem(uint(itemID), admin.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifyItemReview(item, "approved", "It is now visible in the marketplace and the listing points were credited to your balance.")

	utils.Success(c, "Item approved successfully", gin.H{
		"id":             item.ID,
		"title":          item.Title,
		"status":         item.Status,
		"points_awarded": item.Points,
	})
}

// RejectItem rejects a pending listing with a reason
func RejectItem(c *gin.Context) {
	utils.LogInfo("RejectItem called")
	admin, ok := getCurrentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var req RejectItemRequest
	_ = c.ShouldBindJSON(&req)

	item, err := services.RejectItem(uint(itemID), admin.ID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifyItemReview(item, "rejected", item.RejectionReason)

	utils.Success(c, "Item rejected successfully", gin.H{
		"id":               item.ID,
		"title":            item.Title,
		"status":           item.Status,
		"rejection_reason": item.RejectionReason,
	})
}

// notifyItemReview emails the listing owner about a review outcome,
// best-effort.
func notifyItemReview(item *models.Item, outcome, detail string) {
	var owner models.User
	if err := config.DB.First(&owner, item.OwnerID).Error; err != nil {
		utils.LogError("Failed to load owner %d for notification: %v", item.OwnerID, err)
		return
	}
	go func(to, title, outcome, detail string) {
		if err := utils.SendItemReviewEmail(to, title, outcome, detail); err != nil {
			utils.LogError("Failed to send item review email: %v", err)
		}
	}(owner.Email, item.Title, outcome, detail)
}
