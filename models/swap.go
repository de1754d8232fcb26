package models

import (
	"time"

	"gorm.io/gorm"
)

// Swap represents a proposed exchange between a requester and the owner
// of the requested item. The point fields are frozen at creation time.
type Swap struct {
	gorm.Model
	RequesterID      uint       `json:"requester_id" gorm:"index"`
	Requester        User       `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	OwnerID          uint       `json:"owner_id" gorm:"index"`
	Owner            User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	RequestedItemID  uint       `json:"requested_item_id"`
	RequestedItem    Item       `json:"requested_item,omitempty" gorm:"foreignKey:RequestedItemID"`
	OfferedItemID    *uint      `json:"offered_item_id"`
	OfferedItem      *Item      `json:"offered_item,omitempty" gorm:"foreignKey:OfferedItemID"`
	SwapType         string     `json:"swap_type"`
	PointsRequired   int        `json:"points_required"`
	PointsOffered    int        `json:"points_offered" gorm:"default:0"`
	PointsDifference int        `json:"points_difference"`
	Status           string     `json:"status" gorm:"default:'pending';index"`
	Message          string     `json:"message"`
	RejectionReason  string     `json:"rejection_reason"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// Swap type constants
const (
	SwapTypeDirect = "direct"
	SwapTypePoints = "points"
)

// Swap status constants
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCancelled = "cancelled"
)
