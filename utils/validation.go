package utils

import (
	"regexp"
	"strings"

	"github.com/meera-jk/ReWear/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks email format
func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "Email is required"
	}
	if len(email) > 254 {
		return false, "Email is too long"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 6 {
		return false, "Password must be at least 6 characters"
	}
	if len(password) > 72 {
		return false, "Password is too long"
	}
	return true, ""
}

// ValidateName checks a display name
func ValidateName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "Name is required"
	}
	if len(name) > 100 {
		return false, "Name must be at most 100 characters"
	}
	return true, ""
}

// ValidateCondition checks that a condition tier is one of the known values
func ValidateCondition(condition string) (bool, string) {
	switch condition {
	case models.ConditionLikeNew, models.ConditionExcellent, models.ConditionVeryGood,
		models.ConditionGood, models.ConditionFair:
		return true, ""
	}
	return false, "Condition must be one of: like-new, excellent, very-good, good, fair"
}

// ValidateSize checks that a garment size is one of the known values
func ValidateSize(size string) (bool, string) {
	switch size {
	case "XS", "S", "M", "L", "XL", "XXL", "XXXL":
		return true, ""
	}
	return false, "Size must be one of: XS, S, M, L, XL, XXL, XXXL"
}

// ValidateStringLength checks the length of a string field
func ValidateStringLength(str string, min, max int) (bool, string) {
	if len(str) < min || len(str) > max {
		return false, "Invalid field length"
	}
	return true, ""
}
