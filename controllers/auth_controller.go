package controllers

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser creates an account and grants the welcome bonus. The
// user row and the bonus ledger entry commit in one transaction.
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	utils.LogInfo("Registration attempt for email: %s", req.Email)

	if valid, msg := utils.ValidateName(req.Name); !valid {
		utils.BadRequest(c, "Invalid name", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.BadRequest(c, "Passwords do not match", "Password and confirm password must be the same.")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration attempt failed - Email already registered: %s", req.Email)
		utils.Conflict(c, "User already exists with this email", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
		Status:   models.UserStatusActive,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return services.GrantWelcomeBonus(tx, user.ID)
	})
	if err != nil {
		utils.LogError("Failed to create user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	utils.LogInfo("User registered: %s (ID: %d)", user.Email, user.ID)
	utils.Created(c, "User created successfully", gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"points": models.WelcomePoints,
		"role":   user.Role,
	})
}

// LoginUser authenticates a user, issues a JWT and stores the user id
// in the cookie session.
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required", nil)
		return
	}

	utils.LogInfo("Login attempt for email: %s", req.Email)

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed - Wrong password for: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.Status != models.UserStatusActive {
		utils.LogError("Login blocked - Account %s is %s", req.Email, user.Status)
		utils.Forbidden(c, "Account is suspended or banned")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for user %d: %v", user.ID, err)
	}

	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"points": user.Points,
			"role":   user.Role,
			"avatar": user.Avatar,
		},
	})
}

// LogoutUser clears the cookie session
func LogoutUser(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session: %v", err)
	}
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin seeds an admin account from the environment on
// first boot. Does nothing when the account already exists.
func CreateSampleAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:       "Administrator",
		Email:      email,
		Password:   hash,
		Role:       models.RoleAdmin,
		Status:     models.UserStatusActive,
		IsVerified: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Seeded admin account: %s", email)
	return nil
}
