package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// AcceptSwapRequest settles a pending swap the caller owns
func AcceptSwapRequest(c *gin.Context) {
	utils.LogInfo("AcceptSwapRequest called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	swapID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid swap request ID", nil)
		return
	}

	swap, err := services.AcceptSwapRequest(uint(swapID), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifySwapDecision(swap, "accepted")

	utils.Success(c, "Swap request accepted and completed!", gin.H{
		"id":           swap.ID,
		"status":       swap.Status,
		"completed_at": swap.CompletedAt,
	})
}

// notifySwapDecision emails the requester about an accept/reject,
// best-effort.
func notifySwapDecision(swap *models.Swap, decision string) {
	var requester models.User
	if err := config.DB.First(&requester, swap.RequesterID).Error; err != nil {
		utils.LogError("Failed to load requester %d for notification: %v", swap.RequesterID, err)
		return
	}
	title := swap.RequestedItem.Title
	if title == "" {
		var item models.Item
		if err := config.DB.First(&item, swap.RequestedItemID).Error; err == nil {
			title = item.Title
		}
	}
	go func(to, itemTitle, decision string) {
		if err := utils.SendSwapDecisionEmail(to, itemTitle, decision); err != nil {
			utils.LogError("Failed to send swap decision email: %v", err)
		}
	}(requester.Email, title, decision)
}
