package models

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a garment listed for swapping
type Item struct {
	gorm.Model
	Title           string     `json:"title" gorm:"not null"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Type            string     `json:"type"`
	Size            string     `json:"size"`
	Condition       string     `json:"condition"`
	Points          int        `json:"points"`
	Tags            string     `json:"tags"`
	Images          string     `json:"images"`
	Status          string     `json:"status" gorm:"default:'pending';index"`
	OwnerID         uint       `json:"owner_id" gorm:"index"`
	Owner           User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Views           int        `json:"views" gorm:"default:0"`
	ApprovedAt      *time.Time `json:"approved_at"`
	ApprovedByID    *uint      `json:"approved_by_id"`
	RejectionReason string     `json:"rejection_reason"`
}

// Item lifecycle status constants
const (
	ItemStatusPending     = "pending"
	ItemStatusApproved    = "approved"
	ItemStatusRejected    = "rejected"
	ItemStatusSwapped     = "swapped"
	ItemStatusUnavailable = "unavailable"
)

// Condition tiers, best to worst
const (
	ConditionLikeNew   = "like-new"
	ConditionExcellent = "excellent"
	ConditionVeryGood  = "very-good"
	ConditionGood      = "good"
	ConditionFair      = "fair"
)
