package middlewares

import (
	"net/http"
	"strings"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the cookie-session key holding the logged in user's id.
const SessionUserKey = "user_id"

type authFailure struct {
	status  int
	message string
}

// resolveUser finds the caller from the bearer token, falling back to the
// cookie session when no Authorization header is sent.
func resolveUser(c *gin.Context) (models.UserProfile, *authFailure) {
	var userID int

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		authToken := strings.Split(authHeader, " ")
		if len(authToken) != 2 || authToken[0] != "Bearer" {
			return models.UserProfile{}, &authFailure{http.StatusUnauthorized, "Invalid token format"}
		}

		id, err := services.ParseToken(authToken[1])
		if err != nil {
			return models.UserProfile{}, &authFailure{http.StatusUnauthorized, "Invalid or expired token"}
		}
		userID = id
	} else {
		userID = sessionUserID(c)
	}

	if userID == 0 {
		return models.UserProfile{}, &authFailure{http.StatusUnauthorized, "Please log in to continue."}
	}

	user, found, err := services.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		initializers.Log.WithError(err).Error("failed to load user profile")
		return models.UserProfile{}, &authFailure{http.StatusInternalServerError, "Failed to load user profile"}
	}
	if !found {
		return models.UserProfile{}, &authFailure{http.StatusUnauthorized, "Account not found"}
	}

	return user, nil
}

// SessionFrom returns the cookie session when the sessions middleware is
// installed on the route.
func SessionFrom(c *gin.Context) (sessions.Session, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil, false
	}
	return sessions.Default(c), true
}

func sessionUserID(c *gin.Context) int {
	session, ok := SessionFrom(c)
	if !ok {
		return 0
	}

	id, ok := session.Get(SessionUserKey).(int)
	if !ok {
		return 0
	}
	return id
}

func setCurrentUser(c *gin.Context, user models.UserProfile) {
	c.Set("currentUser", user)
	c.Set("admin", user.Admin)
}

// CheckAuth rejects requests without a valid token or session. The admin
// flag comes from the stored profile so promotions apply immediately.
func CheckAuth(c *gin.Context) {
	user, failure := resolveUser(c)
	if failure != nil {
		c.AbortWithStatusJSON(failure.status, gin.H{"error": failure.message})
		return
	}

	setCurrentUser(c, user)
	c.Next()
}

// OptionalAuth identifies the caller when it can and otherwise lets the
// request through anonymously.
func OptionalAuth(c *gin.Context) {
	if user, failure := resolveUser(c); failure == nil {
		setCurrentUser(c, user)
	}
	c.Next()
}
