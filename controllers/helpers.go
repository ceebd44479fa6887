package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

// callerFrom builds the service caller from what CheckAuth or OptionalAuth
// stored on the context. Anonymous visitors get the zero Caller.
func callerFrom(c *gin.Context) models.Caller {
	value, exists := c.Get("currentUser")
	if !exists {
		return models.Caller{}
	}

	user, ok := value.(models.UserProfile)
	if !ok {
		return models.Caller{}
	}

	return models.Caller{User_Profile_ID: user.User_Profile_ID, Admin: c.GetBool("admin")}
}

// respondError maps a service error onto a status code. Anything unexpected
// is logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var validation *services.ValidationError
	var status *services.StatusError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "field": validation.Field})
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &status) && errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": status.Message})
	case errors.As(err, &status) && errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": status.Message})
	default:
		initializers.Log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return id, true
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}
