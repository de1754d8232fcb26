package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
)

// setupTestDB points the global connection at a fresh in-memory
// database. Tests share the global, so they must not run in parallel.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	config.DB = db
	return db
}

func createTestUser(t *testing.T, name string, points int) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Points:   points,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return &user
}

func createTestItem(t *testing.T, ownerID uint, title string, points int, status string) *models.Item {
	t.Helper()
	item := models.Item{
		Title:     title,
		Condition: models.ConditionGood,
		Points:    points,
		Status:    status,
		OwnerID:   ownerID,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return &item
}

func reloadUser(t *testing.T, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, config.DB.First(&user, id).Error)
	return &user
}

func reloadItem(t *testing.T, id uint) *models.Item {
	t.Helper()
	var item models.Item
	require.NoError(t, config.DB.First(&item, id).Error)
	return &item
}

func reloadSwap(t *testing.T, id uint) *models.Swap {
	t.Helper()
	var swap models.Swap
	require.NoError(t, config.DB.First(&swap, id).Error)
	return &swap
}

func ledgerEntries(t *testing.T, userID uint) []models.PointsTransaction {
	t.Helper()
	var entries []models.PointsTransaction
	require.NoError(t, config.DB.Where("user_id = ?", userID).Order("id").Find(&entries).Error)
	return entries
}

// assertLedgerBalanced checks the ledger invariant: starting balance
// plus the sum of all entries equals the current balance.
func assertLedgerBalanced(t *testing.T, userID uint, startingBalance int) {
	t.Helper()
	sum := 0
	for _, entry := range ledgerEntries(t, userID) {
		sum += entry.Amount
	}
	assert.Equal(t, reloadUser(t, userID).Points, startingBalance+sum,
		"user %d balance does not reconcile with ledger", userID)
}

func TestCalculateSwapCost(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requested := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)
	cheaper := createTestItem(t, owner.ID, "Plain Tee", 10, models.ItemStatusApproved)
	pricier := createTestItem(t, owner.ID, "Wool Coat", 50, models.ItemStatusApproved)

	t.Run("points only", func(t *testing.T) {
		cost, err := CalculateSwapCost(requested.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 40, cost.PointsRequired)
		assert.Equal(t, 0, cost.PointsOffered)
		assert.Equal(t, 40, cost.PointsDifference)
	})

	t.Run("cheaper offered item", func(t *testing.T) {
		cost, err := CalculateSwapCost(requested.ID, &cheaper.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, cost.PointsRequired)
		assert.Equal(t, 10, cost.PointsOffered)
		assert.Equal(t, 30, cost.PointsDifference)
	})

	t.Run("pricier offered item floors at zero", func(t *testing.T) {
		cost, err := CalculateSwapCost(requested.ID, &pricier.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, cost.PointsRequired)
		assert.Equal(t, 50, cost.PointsOffered)
		assert.Equal(t, 0, cost.PointsDifference)
	})

	t.Run("missing requested item", func(t *testing.T) {
		_, err := CalculateSwapCost(99999, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing offered item", func(t *testing.T) {
		missing := uint(99999)
		_, err := CalculateSwapCost(requested.ID, &missing)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateSwapRequestInsufficientPoints(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 10)
	item := createTestItem(t, owner.ID, "Wool Coat", 50, models.ItemStatusApproved)

	_, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.Error(t, err)

	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 50, insufficient.Required)
	assert.Equal(t, 10, insufficient.Available)

	// No request persisted, no balance touched
	var count int64
	require.NoError(t, config.DB.Model(&models.Swap{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 10, reloadUser(t, requester.ID).Points)
}

func TestCreateSwapRequestDirectSkipsBalanceCheck(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 0)
	requested := createTestItem(t, owner.ID, "Wool Coat", 50, models.ItemStatusApproved)
	offered := createTestItem(t, requester.ID, "Plain Tee", 10, models.ItemStatusApproved)

	// Broke requester may still propose a direct swap; affordability of
	// the difference is checked at acceptance.
	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: requested.ID,
		OfferedItemID:   &offered.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SwapTypeDirect, swap.SwapType)
	assert.Equal(t, 40, swap.PointsDifference)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
}

func TestCreateSwapRequestFreezesQuote(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, swap.PointsRequired)

	// Revalue the item after the request was made
	require.NoError(t, config.DB.Model(&models.Item{}).Where("id = ?", item.ID).Update("points", 90).Error)

	settled, err := AcceptSwapRequest(swap.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, settled.PointsDifference)
	assert.Equal(t, 60, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 40, reloadUser(t, owner.ID).Points)
}

func TestAcceptSwapRequestPointsOnly(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 50)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	settled, err := AcceptSwapRequest(swap.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusAccepted, settled.Status)
	require.NotNil(t, settled.CompletedAt)

	assert.Equal(t, 60, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 90, reloadUser(t, owner.ID).Points)
	assert.Equal(t, models.ItemStatusSwapped, reloadItem(t, item.ID).Status)
	assert.Equal(t, 1, reloadUser(t, requester.ID).TotalSwaps)
	assert.Equal(t, 1, reloadUser(t, owner.ID).TotalSwaps)

	requesterEntries := ledgerEntries(t, requester.ID)
	require.Len(t, requesterEntries, 1)
	assert.Equal(t, models.PointsTypeSpent, requesterEntries[0].Type)
	assert.Equal(t, -40, requesterEntries[0].Amount)
	require.NotNil(t, requesterEntries[0].RelatedSwapID)
	assert.Equal(t, swap.ID, *requesterEntries[0].RelatedSwapID)

	ownerEntries := ledgerEntries(t, owner.ID)
	require.Len(t, ownerEntries, 1)
	assert.Equal(t, models.PointsTypeEarned, ownerEntries[0].Type)
	assert.Equal(t, 40, ownerEntries[0].Amount)

	assertLedgerBalanced(t, requester.ID, 100)
	assertLedgerBalanced(t, owner.ID, 50)
}

func TestAcceptSwapRequestDirectCheaperOffer(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	requested := createTestItem(t, owner.ID, "Wool Coat", 50, models.ItemStatusApproved)
	offered := createTestItem(t, requester.ID, "Cotton Scarf", 30, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: requested.ID,
		OfferedItemID:   &offered.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, swap.PointsDifference)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	require.NoError(t, err)

	// Requester pays the 20 point difference and earns 30 for the
	// offered item; owner earns the full 50.
	assert.Equal(t, 110, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 50, reloadUser(t, owner.ID).Points)
	assert.Equal(t, models.ItemStatusSwapped, reloadItem(t, requested.ID).Status)
	assert.Equal(t, models.ItemStatusSwapped, reloadItem(t, offered.ID).Status)

	assertLedgerBalanced(t, requester.ID, 100)
	assertLedgerBalanced(t, owner.ID, 0)
}

func TestAcceptSwapRequestDirectPricierOffer(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 0)
	requested := createTestItem(t, owner.ID, "Cotton Scarf", 30, models.ItemStatusApproved)
	offered := createTestItem(t, requester.ID, "Wool Coat", 50, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: requested.ID,
		OfferedItemID:   &offered.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, swap.PointsDifference)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	require.NoError(t, err)

	// Zero difference means no debit; no spent entry is written
	assert.Equal(t, 50, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 30, reloadUser(t, owner.ID).Points)

	requesterEntries := ledgerEntries(t, requester.ID)
	require.Len(t, requesterEntries, 1)
	assert.Equal(t, models.PointsTypeEarned, requesterEntries[0].Type)

	assertLedgerBalanced(t, requester.ID, 0)
	assertLedgerBalanced(t, owner.ID, 0)
}

func TestAcceptSwapRequestSettlesAtMostOnce(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	require.NoError(t, err)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Second attempt must not move points again
	assert.Equal(t, 60, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 40, reloadUser(t, owner.ID).Points)
	assert.Len(t, ledgerEntries(t, requester.ID), 1)
	assert.Len(t, ledgerEntries(t, owner.ID), 1)
}

func TestAcceptSwapRequestAuthorization(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	stranger := createTestUser(t, "stranger", 0)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	_, err = AcceptSwapRequest(swap.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = AcceptSwapRequest(swap.ID, requester.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = AcceptSwapRequest(99999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, models.SwapStatusPending, reloadSwap(t, swap.ID).Status)
}

func TestAcceptSwapRequestInsufficientPointsRollsBack(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	// Requester spends their balance elsewhere while the request is pending
	require.NoError(t, config.DB.Model(&models.User{}).Where("id = ?", requester.ID).Update("points", 5).Error)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 40, insufficient.Required)
	assert.Equal(t, 5, insufficient.Available)

	// Everything rolled back, request still pending
	assert.Equal(t, models.SwapStatusPending, reloadSwap(t, swap.ID).Status)
	assert.Equal(t, models.ItemStatusApproved, reloadItem(t, item.ID).Status)
	assert.Equal(t, 5, reloadUser(t, requester.ID).Points)
	assert.Equal(t, 0, reloadUser(t, owner.ID).Points)
	assert.Empty(t, ledgerEntries(t, owner.ID))
}

func TestRejectSwapRequest(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	_, err = RejectSwapRequest(swap.ID, requester.ID, "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	rejected, err := RejectSwapRequest(swap.ID, owner.ID, "Already promised to a friend")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusRejected, rejected.Status)
	assert.Equal(t, "Already promised to a friend", rejected.RejectionReason)

	// Rejection moves no points and leaves the item listed
	assert.Equal(t, 100, reloadUser(t, requester.ID).Points)
	assert.Equal(t, models.ItemStatusApproved, reloadItem(t, item.ID).Status)

	_, err = RejectSwapRequest(swap.ID, owner.ID, "again")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelSwapRequest(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", 0)
	requester := createTestUser(t, "requester", 100)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusApproved)

	swap, err := CreateSwapRequest(CreateSwapRequestInput{
		RequesterID:     requester.ID,
		OwnerID:         owner.ID,
		RequestedItemID: item.ID,
	})
	require.NoError(t, err)

	_, err = CancelSwapRequest(swap.ID, owner.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	cancelled, err := CancelSwapRequest(swap.ID, requester.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCancelled, cancelled.Status)

	_, err = AcceptSwapRequest(swap.ID, owner.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAwardBonusPoints(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "member", 30)

	updated, entry, err := AwardBonusPoints(user.ID, 25, "Community cleanup event", nil)
	require.NoError(t, err)
	assert.Equal(t, 55, updated.Points)
	assert.Equal(t, models.PointsTypeBonus, entry.Type)
	assert.Equal(t, 25, entry.Amount)
	assert.Equal(t, "Community cleanup event", entry.Description)
	assert.NotEmpty(t, entry.Reference)

	assert.Equal(t, 55, reloadUser(t, user.ID).Points)
	assertLedgerBalanced(t, user.ID, 30)

	_, _, err = AwardBonusPoints(99999, 10, "ghost", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGrantWelcomeBonus(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "newbie", 0)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return GrantWelcomeBonus(tx, user.ID)
	})
	require.NoError(t, err)

	assert.Equal(t, models.WelcomePoints, reloadUser(t, user.ID).Points)
	entries := ledgerEntries(t, user.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.PointsTypeBonus, entries[0].Type)
	assert.Equal(t, models.WelcomePoints, entries[0].Amount)
	assertLedgerBalanced(t, user.ID, 0)
}

func TestApproveItem(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", 0)
	owner := createTestUser(t, "owner", 0)
	item := createTestItem(t, owner.ID, "Denim Jacket", 40, models.ItemStatusPending)

	approved, err := ApproveItem(item.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedByID)
	assert.Equal(t, admin.ID, *approved.ApprovedByID)

	// Listing owner is paid the item's point value exactly once
	assert.Equal(t, 40, reloadUser(t, owner.ID).Points)
	entries := ledgerEntries(t, owner.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.PointsTypeEarned, entries[0].Type)
	assert.Equal(t, 40, entries[0].Amount)
	assertLedgerBalanced(t, owner.ID, 0)

	_, err = ApproveItem(item.ID, admin.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 40, reloadUser(t, owner.ID).Points)

	_, err = ApproveItem(99999, admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectItem(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", 0)
	owner := createTestUser(t, "owner", 0)
	item := createTestItem(t, owner.ID, "Stained Shirt", 20, models.ItemStatusPending)

	rejected, err := RejectItem(item.ID, admin.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusRejected, rejected.Status)
	assert.Equal(t, "Item does not meet quality standards", rejected.RejectionReason)

	// No points move on rejection
	assert.Equal(t, 0, reloadUser(t, owner.ID).Points)
	assert.Empty(t, ledgerEntries(t, owner.ID))

	_, err = RejectItem(item.ID, admin.ID, "again")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGetPointsHistory(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "member", 0)
	other := createTestUser(t, "other", 0)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := models.PointsTransaction{
			UserID:      user.ID,
			Type:        models.PointsTypeEarned,
			Amount:      10 + i,
			Description: fmt.Sprintf("entry %d", i),
			Reference:   fmt.Sprintf("ref-%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, config.DB.Create(&entry).Error)
	}
	require.NoError(t, config.DB.Create(&models.PointsTransaction{
		UserID: other.ID, Type: models.PointsTypeBonus, Amount: 99, Reference: "ref-other",
	}).Error)

	history, err := GetPointsHistory(user.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "entry 4", history[0].Description)
	assert.Equal(t, "entry 3", history[1].Description)
	assert.Equal(t, "entry 2", history[2].Description)

	history, err = GetPointsHistory(user.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "entry 1", history[0].Description)

	// Only the requesting user's entries appear
	history, err = GetPointsHistory(user.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestSentinelErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("requested item: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, IsInsufficientPoints(&InsufficientPointsError{Required: 5, Available: 1}))
	assert.False(t, IsInsufficientPoints(ErrNotFound))
}
