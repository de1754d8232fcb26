package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"meera@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{strings.Repeat("a", 250) + "@x.com", false},
	}
	for _, tt := range tests {
		valid, _ := ValidateEmail(tt.email)
		assert.Equal(t, tt.valid, valid, tt.email)
	}
}

func TestValidatePassword(t *testing.T) {
	valid, _ := ValidatePassword("secret")
	assert.True(t, valid)

	valid, msg := ValidatePassword("short")
	assert.False(t, valid)
	assert.NotEmpty(t, msg)

	valid, _ = ValidatePassword(strings.Repeat("x", 73))
	assert.False(t, valid)
}

func TestValidateCondition(t *testing.T) {
	for _, condition := range []string{"like-new", "excellent", "very-good", "good", "fair"} {
		valid, _ := ValidateCondition(condition)
		assert.True(t, valid, condition)
	}
	valid, _ := ValidateCondition("worn-out")
	assert.False(t, valid)
}

func TestValidateSize(t *testing.T) {
	valid, _ := ValidateSize("M")
	assert.True(t, valid)
	valid, _ = ValidateSize("medium")
	assert.False(t, valid)
}
