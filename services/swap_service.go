package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/utils"
)

// SwapCost is the pricing triple for a proposed swap
type SwapCost struct {
	PointsRequired   int `json:"points_required"`
	PointsOffered    int `json:"points_offered"`
	PointsDifference int `json:"points_difference"`
}

// CreateSwapRequestInput carries the parameters for a new swap request
type CreateSwapRequestInput struct {
	RequesterID     uint
	OwnerID         uint
	RequestedItemID uint
	OfferedItemID   *uint
	Message         string
}

// CalculateSwapCost computes the pricing triple for a swap of the
// requested item against an optional offered item. Pure read, no side
// effects; request creation and the UI preview both price through here.
func CalculateSwapCost(requestedItemID uint, offeredItemID *uint) (*SwapCost, error) {
	var requestedItem models.Item
	if err := config.DB.First(&requestedItem, requestedItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("requested item: %w", ErrNotFound)
		}
		return nil, err
	}

	cost := &SwapCost{
		PointsRequired: requestedItem.Points,
	}

	if offeredItemID != nil {
		var offeredItem models.Item
		if err := config.DB.First(&offeredItem, *offeredItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("offered item: %w", ErrNotFound)
			}
			return nil, err
		}
		cost.PointsOffered = offeredItem.Points
		cost.PointsDifference = cost.PointsRequired - cost.PointsOffered
		if cost.PointsDifference < 0 {
			cost.PointsDifference = 0
		}
	} else {
		cost.PointsDifference = cost.PointsRequired
	}

	return cost, nil
}

// CreateSwapRequest prices the swap and persists a pending request with
// the computed point fields frozen. The quote is not recomputed later
// even if item valuations change before acceptance.
//
// For points-only swaps the requester's balance is checked here; direct
// swaps are only checked at acceptance, since the offered item itself
// is the payment.
func CreateSwapRequest(input CreateSwapRequestInput) (*models.Swap, error) {
	cost, err := CalculateSwapCost(input.RequestedItemID, input.OfferedItemID)
	if err != nil {
		return nil, err
	}

	var requester models.User
	if err := config.DB.First(&requester, input.RequesterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("requester: %w", ErrNotFound)
		}
		return nil, err
	}

	swapType := models.SwapTypePoints
	if input.OfferedItemID != nil {
		swapType = models.SwapTypeDirect
	}

	if swapType == models.SwapTypePoints && requester.Points < cost.PointsDifference {
		return nil, &InsufficientPointsError{
			Required:  cost.PointsDifference,
			Available: requester.Points,
		}
	}

	swap := models.Swap{
		RequesterID:      input.RequesterID,
		OwnerID:          input.OwnerID,
		RequestedItemID:  input.RequestedItemID,
		OfferedItemID:    input.OfferedItemID,
		SwapType:         swapType,
		PointsRequired:   cost.PointsRequired,
		PointsOffered:    cost.PointsOffered,
		PointsDifference: cost.PointsDifference,
		Status:           models.SwapStatusPending,
		Message:          input.Message,
	}

	if err := config.DB.Create(&swap).Error; err != nil {
		return nil, err
	}

	utils.LogInfo("Swap request %d created: type=%s required=%d offered=%d difference=%d",
		swap.ID, swap.SwapType, swap.PointsRequired, swap.PointsOffered, swap.PointsDifference)
	return &swap, nil
}

// AcceptSwapRequest settles a pending swap. All effects - balance
// movements, ledger entries, item statuses, swap counters and the swap
// record itself - are applied in one database transaction; any failure
// rolls everything back and leaves the request pending.
//
// Preconditions are checked in order: the swap must exist, the acting
// user must be its owner, it must still be pending, and the requester
// must still afford the frozen points difference. The pending check is
// repeated as a guarded UPDATE inside the transaction, so two
// concurrent acceptances settle exactly once.
func AcceptSwapRequest(swapID, actingOwnerID uint) (*models.Swap, error) {
	var swap models.Swap
	err := config.DB.Preload("RequestedItem").Preload("OfferedItem").First(&swap, swapID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("swap request: %w", ErrNotFound)
		}
		return nil, err
	}

	if swap.OwnerID != actingOwnerID {
		return nil, ErrUnauthorized
	}
	if swap.Status != models.SwapStatusPending {
		return nil, ErrInvalidState
	}

	now := time.Now()
	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Flip pending -> accepted. The status guard makes this a
	// compare-and-swap: the loser of a concurrent acceptance matches
	// zero rows and fails with ErrInvalidState.
	res := tx.Model(&models.Swap{}).
		Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":       models.SwapStatusAccepted,
			"completed_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrInvalidState
	}

	// Debit the requester by the frozen difference. The balance guard
	// re-validates affordability at acceptance time and keeps the
	// balance from ever going negative.
	if swap.PointsDifference > 0 {
		res := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", swap.RequesterID, swap.PointsDifference).
			UpdateColumn("points", gorm.Expr("points - ?", swap.PointsDifference))
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Read the stale balance through the open transaction so the
			// error reports what the guard actually saw.
			var requester models.User
			err := tx.First(&requester, swap.RequesterID).Error
			tx.Rollback()
			if err != nil {
				return nil, err
			}
			return nil, &InsufficientPointsError{
				Required:  swap.PointsDifference,
				Available: requester.Points,
			}
		}

		if err := appendLedgerEntry(tx, swap.RequesterID, models.PointsTypeSpent, -swap.PointsDifference,
			fmt.Sprintf("Points spent for %s", swap.RequestedItem.Title),
			&swap.RequestedItemID, &swap.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Owner earns the requested item's full value
	if err := creditUser(tx, swap.OwnerID, swap.PointsRequired); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := appendLedgerEntry(tx, swap.OwnerID, models.PointsTypeEarned, swap.PointsRequired,
		fmt.Sprintf("Points earned from swapping %s", swap.RequestedItem.Title),
		&swap.RequestedItemID, &swap.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Direct swap: requester earns the offered item's value
	if swap.SwapType == models.SwapTypeDirect && swap.OfferedItemID != nil {
		if err := creditUser(tx, swap.RequesterID, swap.PointsOffered); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := appendLedgerEntry(tx, swap.RequesterID, models.PointsTypeEarned, swap.PointsOffered,
			fmt.Sprintf("Points earned from offering %s", swap.OfferedItem.Title),
			swap.OfferedItemID, &swap.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Both items leave the marketplace
	if err := tx.Model(&models.Item{}).Where("id = ?", swap.RequestedItemID).
		Update("status", models.ItemStatusSwapped).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if swap.OfferedItemID != nil {
		if err := tx.Model(&models.Item{}).Where("id = ?", *swap.OfferedItemID).
			Update("status", models.ItemStatusSwapped).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Completed-swap counters for both parties
	if err := tx.Model(&models.User{}).Where("id IN ?", []uint{swap.RequesterID, swap.OwnerID}).
		UpdateColumn("total_swaps", gorm.Expr("total_swaps + ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	swap.Status = models.SwapStatusAccepted
	swap.CompletedAt = &now
	utils.LogInfo("Swap %d settled: requester=%d owner=%d difference=%d",
		swap.ID, swap.RequesterID, swap.OwnerID, swap.PointsDifference)
	return &swap, nil
}

// RejectSwapRequest declines a pending swap. Only the owner of the
// requested item may reject; balances and items are untouched.
func RejectSwapRequest(swapID, actingOwnerID uint, reason string) (*models.Swap, error) {
	var swap models.Swap
	if err := config.DB.First(&swap, swapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("swap request: %w", ErrNotFound)
		}
		return nil, err
	}

	if swap.OwnerID != actingOwnerID {
		return nil, ErrUnauthorized
	}
	if swap.Status != models.SwapStatusPending {
		return nil, ErrInvalidState
	}

	res := config.DB.Model(&models.Swap{}).
		Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":           models.SwapStatusRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	swap.Status = models.SwapStatusRejected
	swap.RejectionReason = reason
	return &swap, nil
}

// CancelSwapRequest withdraws a pending swap. Only the requester may
// cancel their own request.
func CancelSwapRequest(swapID, requesterID uint) (*models.Swap, error) {
	var swap models.Swap
	if err := config.DB.First(&swap, swapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("swap request: %w", ErrNotFound)
		}
		return nil, err
	}

	if swap.RequesterID != requesterID {
		return nil, ErrUnauthorized
	}
	if swap.Status != models.SwapStatusPending {
		return nil, ErrInvalidState
	}

	res := config.DB.Model(&models.Swap{}).
		Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
		Update("status", models.SwapStatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	swap.Status = models.SwapStatusCancelled
	return &swap, nil
}

// AwardBonusPoints credits a user out-of-band and records a bonus
// ledger entry. Balance update and entry are one transaction.
func AwardBonusPoints(userID uint, amount int, description string, relatedItemID *uint) (*models.User, *models.PointsTransaction, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, nil, err
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	if err := creditUser(tx, user.ID, amount); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	entry, err := newLedgerEntry(tx, user.ID, models.PointsTypeBonus, amount, description, relatedItemID, nil)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	user.Points += amount
	utils.LogInfo("Bonus of %d points awarded to user %d: %s", amount, user.ID, description)
	return &user, entry, nil
}

// GrantWelcomeBonus credits the signup bonus inside the caller's
// transaction, so user creation and the welcome credit commit together.
func GrantWelcomeBonus(tx *gorm.DB, userID uint) error {
	if err := creditUser(tx, userID, models.WelcomePoints); err != nil {
		return err
	}
	_, err := newLedgerEntry(tx, userID, models.PointsTypeBonus, models.WelcomePoints,
		"Welcome bonus for new user", nil, nil)
	return err
}

// ApproveItem moves a pending listing to approved and pays the listing
// owner the item's point value, atomically.
func ApproveItem(itemID, adminID uint) (*models.Item, error) {
	var item models.Item
	if err := config.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, err
	}
	if item.Status != models.ItemStatusPending {
		return nil, ErrInvalidState
	}

	now := time.Now()
	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Model(&models.Item{}).
		Where("id = ? AND status = ?", item.ID, models.ItemStatusPending).
		Updates(map[string]interface{}{
			"status":         models.ItemStatusApproved,
			"approved_at":    now,
			"approved_by_id": adminID,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrInvalidState
	}

	if err := creditUser(tx, item.OwnerID, item.Points); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := appendLedgerEntry(tx, item.OwnerID, models.PointsTypeEarned, item.Points,
		fmt.Sprintf("Points earned for approved item: %s", item.Title),
		&item.ID, nil); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	item.Status = models.ItemStatusApproved
	item.ApprovedAt = &now
	item.ApprovedByID = &adminID
	utils.LogInfo("Item %d approved by admin %d, owner %d credited %d points",
		item.ID, adminID, item.OwnerID, item.Points)
	return &item, nil
}

// RejectItem moves a pending listing to rejected. No points move.
func RejectItem(itemID, adminID uint, reason string) (*models.Item, error) {
	var item models.Item
	if err := config.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, err
	}
	if item.Status != models.ItemStatusPending {
		return nil, ErrInvalidState
	}

	if reason == "" {
		reason = "Item does not meet quality standards"
	}

	res := config.DB.Model(&models.Item{}).
		Where("id = ? AND status = ?", item.ID, models.ItemStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ItemStatusRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	item.Status = models.ItemStatusRejected
	item.RejectionReason = reason
	utils.LogInfo("Item %d rejected by admin %d: %s", item.ID, adminID, reason)
	return &item, nil
}

// GetPointsHistory returns a user's ledger entries newest-first
func GetPointsHistory(userID uint, limit, offset int) ([]models.PointsTransaction, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var entries []models.PointsTransaction
	err := config.DB.Where("user_id = ?", userID).
		Preload("RelatedItem").
		Preload("RelatedSwap").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// creditUser adds points to a user's balance
func creditUser(tx *gorm.DB, userID uint, amount int) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// appendLedgerEntry writes one immutable ledger row
func appendLedgerEntry(tx *gorm.DB, userID uint, entryType string, amount int, description string, itemID, swapID *uint) error {
	_, err := newLedgerEntry(tx, userID, entryType, amount, description, itemID, swapID)
	return err
}

func newLedgerEntry(tx *gorm.DB, userID uint, entryType string, amount int, description string, itemID, swapID *uint) (*models.PointsTransaction, error) {
	entry := models.PointsTransaction{
		UserID:        userID,
		Type:          entryType,
		Amount:        amount,
		Description:   description,
		RelatedItemID: itemID,
		RelatedSwapID: swapID,
		Reference:     uuid.New().String(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
