package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// AwardBonusRequest represents the bonus grant payload
type AwardBonusRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	Amount        int    `json:"amount" binding:"required"`
	Description   string `json:"description" binding:"required"`
	RelatedItemID *uint  `json:"related_item_id"`
}

// AwardBonusPoints credits a user with bonus points and records the
// grant in their ledger.
func AwardBonusPoints(c *gin.Context) {
	utils.LogInfo("AwardBonusPoints called")
	admin, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req AwardBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Amount <= 0 {
		utils.ValidationError(c, "Bonus amount must be positive", gin.H{"amount": req.Amount})
		return
	}

	user, entry, err := services.AwardBonusPoints(req.UserID, req.Amount, req.Description, req.RelatedItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.LogInfo("Admin %d awarded %d bonus points to user %d", admin.ID, req.Amount, user.ID)
	utils.Success(c, "Bonus points awarded successfully", gin.H{
		"user_id": user.ID,
		"points":  user.Points,
		"entry": gin.H{
			"id":          entry.ID,
			"type":        entry.Type,
			"amount":      entry.Amount,
			"description": entry.Description,
			"reference":   entry.Reference,
		},
	})
}
