package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// Admin: Download swap activity report as Excel
func DownloadSwapReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSwapReportExcel called")

	period := c.DefaultQuery("period", "week")
	utils.LogDebug("Generating Excel report for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var swaps []models.Swap
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Requester").
		Preload("Owner").
		Preload("RequestedItem").
		Preload("OfferedItem").
		Order("created_at DESC")
	if err := query.Find(&swaps).Error; err != nil {
		utils.LogError("Failed to fetch swaps: %v", err)
		utils.InternalServerError(c, "Failed to fetch swaps", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d swaps for Excel report", len(swaps))

	// --- Calculate summary ---
	var summary struct {
		TotalRequests   int
		Completed       int
		Rejected        int
		Cancelled       int
		Pending         int
		DirectSwaps     int
		PointsSwaps     int
		PointsSettled   int
		TotalMembers    int
	}
	memberSet := make(map[uint]bool)
	for _, swap := range swaps {
		summary.TotalRequests++
		memberSet[swap.RequesterID] = true
		memberSet[swap.OwnerID] = true
		switch swap.Status {
		case models.SwapStatusAccepted:
			summary.Completed++
			summary.PointsSettled += swap.PointsDifference
		case models.SwapStatusRejected:
			summary.Rejected++
		case models.SwapStatusCancelled:
			summary.Cancelled++
		case models.SwapStatusPending:
			summary.Pending++
		}
		if swap.SwapType == models.SwapTypeDirect {
			summary.DirectSwaps++
		} else {
			summary.PointsSwaps++
		}
	}
	summary.TotalMembers = len(memberSet)

	// --- Excel Generation ---
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Swap Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}
	utils.LogDebug("Created Excel sheet for swap report")

	// Community details
	headerLine := sheet.AddRow()
	headerLine.AddCell().SetString("REWEAR - Swap Activity Report")
	headerLine = sheet.AddRow()
	headerLine.AddCell().SetString("Community Clothing Exchange")
	headerLine = sheet.AddRow()
	headerLine.AddCell().SetString("Email: support@rewear.community")
	headerLine = sheet.AddRow()
	headerLine.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Swap ID", "Requester", "Owner", "Requested Item", "Offered Item", "Type", "Points Required", "Points Offered", "Difference", "Status", "Date"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, swap := range swaps {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(swap.ID))
		row.AddCell().SetString(swap.Requester.Name)
		row.AddCell().SetString(swap.Owner.Name)
		row.AddCell().SetString(swap.RequestedItem.Title)
		if swap.OfferedItem != nil {
			row.AddCell().SetString(swap.OfferedItem.Title)
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(swap.SwapType)
		row.AddCell().SetInt(swap.PointsRequired)
		row.AddCell().SetInt(swap.PointsOffered)
		row.AddCell().SetInt(swap.PointsDifference)
		row.AddCell().SetString(swap.Status)
		row.AddCell().SetString(swap.CreatedAt.Format("2006-01-02 15:04"))
	}

	sheet.AddRow() // spacing

	// --- Summary Section ---
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Requests", fmt.Sprintf("%d", summary.TotalRequests)},
		{"Completed", fmt.Sprintf("%d", summary.Completed)},
		{"Rejected", fmt.Sprintf("%d", summary.Rejected)},
		{"Cancelled", fmt.Sprintf("%d", summary.Cancelled)},
		{"Pending", fmt.Sprintf("%d", summary.Pending)},
		{"Direct Swaps", fmt.Sprintf("%d", summary.DirectSwaps)},
		{"Points Swaps", fmt.Sprintf("%d", summary.PointsSwaps)},
		{"Points Settled", fmt.Sprintf("%d", summary.PointsSettled)},
		{"Members Involved", fmt.Sprintf("%d", summary.TotalMembers)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=swap_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}
