package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// RejectSwapRequestBody carries the optional rejection reason
type RejectSwapRequestBody struct {
	Reason string `json:"reason"`
}

// RejectSwapRequest declines a pending swap the caller owns. Balances
// and items are untouched; the requester may try again.
func RejectSwapRequest(c *gin.Context) {
	utils.LogInfo("RejectSwapRequest called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	swapID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid swap request ID", nil)
		return
	}

	var req RejectSwapRequestBody
	_ = c.ShouldBindJSON(&req)

	swap, err := services.RejectSwapRequest(uint(swapID), user.ID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifySwapDecision(swap, "rejected")

	utils.Success(c, "Swap request rejected", gin.H{
		"id":               swap.ID,
		"status":           swap.Status,
		"rejection_reason": swap.RejectionReason,
	})
}

// CancelSwapRequest withdraws a pending swap the caller created
func CancelSwapRequest(c *gin.Context) {
	utils.LogInfo("CancelSwapRequest called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	swapID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid swap request ID", nil)
		return
	}

	swap, err := services.CancelSwapRequest(uint(swapID), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Swap request cancelled", gin.H{
		"id":     swap.ID,
		"status": swap.Status,
	})
}
