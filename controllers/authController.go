package controllers

import (
	"net/http"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/middlewares"
	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func Register(c *gin.Context) {
	var signup models.UserProfileSignup
	if !bindJSON(c, &signup) {
		return
	}

	user, err := services.Register(c.Request.Context(), signup)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Please log in.",
		"user":    user,
	})
}

// Login returns a bearer token and also opens a cookie session for browser
// clients.
func Login(c *gin.Context) {
	var login models.Login
	if !bindJSON(c, &login) {
		return
	}

	user, err := services.Authenticate(c.Request.Context(), login)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, err := services.IssueToken(user)
	if err != nil {
		initializers.Log.WithError(err).Error("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if session, ok := middlewares.SessionFrom(c); ok {
		session.Set(middlewares.SessionUserKey, user.User_Profile_ID)
		if err := session.Save(); err != nil {
			initializers.Log.WithError(err).Warn("failed to save session")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back, " + user.Username + "!",
		"token":   token,
		"user":    user,
	})
}

func Logout(c *gin.Context) {
	if session, ok := middlewares.SessionFrom(c); ok {
		session.Clear()
		if err := session.Save(); err != nil {
			initializers.Log.WithError(err).Warn("failed to clear session")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}

func GetUserProfile(c *gin.Context) {
	user, _ := c.Get("currentUser")

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"admin": c.GetBool("admin"),
	})
}

func StorePushToken(c *gin.Context) {
	var req models.PushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := services.StorePushToken(c.Request.Context(), callerFrom(c), req); err != nil {
		respondError(c, err, "Failed to store push token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored successfully"})
}
