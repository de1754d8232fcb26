package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meera-jk/ReWear/config"
	"github.com/meera-jk/ReWear/models"
	"github.com/meera-jk/ReWear/services"
	"github.com/meera-jk/ReWear/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLogin redirects the caller to the Google consent screen
func GoogleLogin(c *gin.Context) {
	state := utils.NewStateToken()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save oauth state: %v", err)
		utils.InternalServerError(c, "Failed to start Google login", nil)
		return
	}

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback handles the OAuth redirect, signing the user in and
// creating an account (with welcome bonus) on first login.
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	expectedState, _ := session.Get("oauth_state").(string)
	if expectedState == "" || c.Query("state") != expectedState {
		utils.LogError("Google callback with invalid state")
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(context.Background(), c.Query("code"))
	if err != nil {
		utils.LogError("Google code exchange failed: %v", err)
		utils.Unauthorized(c, "Google login failed")
		return
	}

	client := config.GoogleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		utils.LogError("Failed to fetch Google user info: %v", err)
		utils.InternalServerError(c, "Failed to fetch Google profile", nil)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.LogError("Failed to decode Google user info: %v", err)
		utils.InternalServerError(c, "Failed to read Google profile", nil)
		return
	}

	var user models.User
	err = config.DB.Where("google_id = ? OR email = ?", info.ID, info.Email).First(&user).Error
	if err != nil {
		user = models.User{
			Name:       info.Name,
			Email:      info.Email,
			Avatar:     info.Picture,
			GoogleID:   info.ID,
			Role:       models.RoleUser,
			Status:     models.UserStatusActive,
			IsVerified: true,
		}
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return services.GrantWelcomeBonus(tx, user.ID)
		})
		if err != nil {
			utils.LogError("Failed to create Google user %s: %v", info.Email, err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		utils.LogInfo("New user via Google login: %s (ID: %d)", user.Email, user.ID)
	} else if user.GoogleID == "" {
		config.DB.Model(&user).Update("google_id", info.ID)
	}

	if user.Status != models.UserStatusActive {
		utils.Forbidden(c, "Account is suspended or banned")
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for user %d: %v", user.ID, err)
	}

	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"points": user.Points,
			"role":   user.Role,
		},
	})
}
