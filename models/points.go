package models

import (
	"time"

	"gorm.io/gorm"
)

// PointsTransaction is an append-only ledger entry. Entries are never
// updated or deleted; a user's balance must always equal the sum of
// their entries.
type PointsTransaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
	Type          string         `json:"type"`
	Amount        int            `json:"amount"`
	Description   string         `json:"description"`
	RelatedItemID *uint          `json:"related_item_id"`
	RelatedItem   *Item          `json:"related_item,omitempty" gorm:"foreignKey:RelatedItemID"`
	RelatedSwapID *uint          `json:"related_swap_id"`
	RelatedSwap   *Swap          `json:"related_swap,omitempty" gorm:"foreignKey:RelatedSwapID"`
	Reference     string         `json:"reference"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// PointsTransaction type constants
const (
	PointsTypeEarned = "earned"
	PointsTypeSpent  = "spent"
	PointsTypeBonus  = "bonus"
	PointsTypeRefund = "refund"
)
