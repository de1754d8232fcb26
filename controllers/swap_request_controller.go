package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// CreateSwapRequestBody represents the swap request submission
type CreateSwapRequestBody struct {
	RequestedItemID uint   `json:"requested_item_id" binding:"required"`
	OfferedItemID   *uint  `json:"offered_item_id"`
	Message         string `json:"message"`
}

// CreateSwapRequest submits a swap proposal for another user's item
func CreateSwapRequest(c *gin.Context) {
	utils.LogInfo("CreateSwapRequest called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateSwapRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Requested item ID is required", err.Error())
		return
	}

	var requestedItem models.Item
	if err := config.DB.Preload("Owner").First(&requestedItem, req.RequestedItemID).Error; err != nil {
		utils.NotFound(c, "Requested item not found")
		return
	}

	if requestedItem.OwnerID == user.ID {
		utils.LogError("User %d attempted to swap with own item %d", user.ID, requestedItem.ID)
		utils.BadRequest(c, "Cannot swap with your own item", nil)
		return
	}

	if req.OfferedItemID != nil {
		var offeredItem models.Item
		if err := config.DB.First(&offeredItem, *req.OfferedItemID).Error; err != nil {
			utils.NotFound(c, "Offered item not found")
			return
		}
		if offeredItem.OwnerID != user.ID {
			utils.LogError("User %d offered item %d they do not own", user.ID, offeredItem.ID)
			utils.Forbidden(c, "You can only offer your own items")
			return
		}
	}

	swap, err := services.CreateSwapRequest(services.CreateSwapRequestInput{
		RequesterID:     user.ID,
		OwnerID:         requestedItem.OwnerID,
		RequestedItemID: req.RequestedItemID,
		OfferedItemID:   req.OfferedItemID,
		Message:         req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if requestedItem.Owner.Email != "" {
		go func(to, title, requester string) {
			if err := utils.SendSwapRequestEmail(to, title, requester); err != nil {
				utils.LogError("Failed to send swap request email: %v", err)
			}
		}(requestedItem.Owner.Email, requestedItem.Title, user.Name)
	}

	utils.Created(c, "Swap request sent successfully!", gin.H{
		"id":                swap.ID,
		"status":            swap.Status,
		"swap_type":         swap.SwapType,
		"points_required":   swap.PointsRequired,
		"points_offered":    swap.PointsOffered,
		"points_difference": swap.PointsDifference,
	})
}

// ListSwapRequests returns the swaps where the caller is requester or owner
func ListSwapRequests(c *gin.Context) {
	utils.LogInfo("ListSwapRequests called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	page, limit := utils.GetPaginationParams(c)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Swap{}).
		Where("requester_id = ? OR owner_id = ?", user.ID, user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count swaps for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch swap requests", err.Error())
		return
	}

	var swaps []models.Swap
	if err := query.
		Preload("RequestedItem").
		Preload("OfferedItem").
		Preload("Requester").
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		utils.LogError("Failed to fetch swaps for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch swap requests", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Swap requests retrieved successfully", gin.H{"requests": swaps}, total, page, limit)
}
