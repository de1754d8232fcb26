package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// DownloadSwapReceipt generates a PDF receipt for a completed swap.
// Either party of the swap may download it.
func DownloadSwapReceipt(c *gin.Context) {
	utils.LogInfo("DownloadSwapReceipt called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	swapID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid swap request ID", nil)
		return
	}

	var swap models.Swap
	if err := config.DB.
		Preload("Requester").
		Preload("Owner").
		Preload("RequestedItem").
		Preload("OfferedItem").
		Where("id = ? AND (requester_id = ? OR owner_id = ?)", swapID, user.ID, user.ID).
		First(&swap).Error; err != nil {
		utils.LogError("Swap not found for receipt - Swap ID: %d, User ID: %d", swapID, user.ID)
		utils.NotFound(c, "Swap not found")
		return
	}

	if swap.Status != models.SwapStatusAccepted {
		utils.Conflict(c, "Receipts are only available for completed swaps", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "ReWear")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Community Clothing Exchange")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "SWAP RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Swap ID: "+strconv.Itoa(int(swap.ID)))
	if swap.CompletedAt != nil {
		pdf.Cell(80, 8, "Completed: "+swap.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	pdf.Ln(8)
	pdf.Cell(60, 8, "Swap Type: "+swap.SwapType)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Parties")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Requester: "+swap.Requester.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Owner: "+swap.Owner.Name)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Items & Points")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, fmt.Sprintf("Requested item: %s (%d points)", swap.RequestedItem.Title, swap.PointsRequired))
	pdf.Ln(6)
	if swap.OfferedItem != nil {
		pdf.Cell(100, 8, fmt.Sprintf("Offered item: %s (%d points)", swap.OfferedItem.Title, swap.PointsOffered))
		pdf.Ln(6)
	}
	pdf.Cell(100, 8, fmt.Sprintf("Points difference settled: %d", swap.PointsDifference))
	pdf.Ln(10)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=swap_receipt_%d.pdf", swap.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write receipt PDF for swap %d: %v", swap.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}
	utils.LogInfo("Receipt generated for swap %d by user %d", swap.ID, user.ID)
}
