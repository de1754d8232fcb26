package models

import (
	"gorm.io/gorm"
)

// User represents a member of the swap community
type User struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Password     string  `json:"-"`
	Avatar       string  `json:"avatar"`
	Bio          string  `json:"bio"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Points       int     `json:"points" gorm:"default:0"`
	Rating       float64 `json:"rating" gorm:"default:0"`
	TotalRatings int     `json:"total_ratings" gorm:"default:0"`
	TotalSwaps   int     `json:"total_swaps" gorm:"default:0"`
	IsVerified   bool    `json:"is_verified" gorm:"default:false"`
	Role         string  `json:"role" gorm:"default:'user'"`
	Status       string  `json:"status" gorm:"default:'active'"`
	GoogleID     string  `gorm:"default:null" json:"google_id"`

	Items []Item `json:"items,omitempty" gorm:"foreignKey:OwnerID"`
}

// Role constants
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Account status constants
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusBanned    = "banned"
)

// WelcomePoints is the bonus credited to every new account
const WelcomePoints = 100

// IsStaff reports whether the user may perform moderation actions
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}
