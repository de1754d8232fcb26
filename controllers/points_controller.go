package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// GetPointsBalance returns the caller's current points balance
func GetPointsBalance(c *gin.Context) {
	utils.LogInfo("GetPointsBalance called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	utils.Success(c, "Points balance retrieved successfully", gin.H{
		"points":      user.Points,
		"total_swaps": user.TotalSwaps,
	})
}

// GetPointsHistory returns the caller's ledger entries newest-first
func GetPointsHistory(c *gin.Context) {
	utils.LogInfo("GetPointsHistory called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := services.GetPointsHistory(user.ID, limit, offset)
	if err != nil {
		utils.LogError("Failed to fetch points history for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch points history", err.Error())
		return
	}

	utils.Success(c, "Points history retrieved successfully", gin.H{"history": history})
}
