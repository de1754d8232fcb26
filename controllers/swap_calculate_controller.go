package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// CalculateSwapCostRequest represents the pricing preview body
type CalculateSwapCostRequest struct {
	RequestedItemID uint  `json:"requested_item_id" binding:"required"`
	OfferedItemID   *uint `json:"offered_item_id"`
}

// CalculateSwapCost returns the pricing triple for a proposed swap.
// This is the same oracle used at request creation, so the preview and
// the persisted quote always agree.
func CalculateSwapCost(c *gin.Context) {
	utils.LogInfo("CalculateSwapCost called")

	var req CalculateSwapCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Requested item ID is required", err.Error())
		return
	}

	cost, err := services.CalculateSwapCost(req.RequestedItemID, req.OfferedItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Swap cost calculated", cost)
}
