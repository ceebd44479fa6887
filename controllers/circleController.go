package controllers

import (
	"net/http"

	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func CreateCircle(c *gin.Context) {
	var in models.PrayerCircleCreate
	if !bindJSON(c, &in) {
		return
	}

	circle, err := services.CreateCircle(c.Request.Context(), callerFrom(c), in)
	if err != nil {
		respondError(c, err, "Failed to create prayer circle")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Prayer circle created! Share the invite code with others.",
		"circle":  circle,
	})
}

func GetMyCircles(c *gin.Context) {
	circles, err := services.MyCircles(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load prayer circles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"circles": circles})
}

func JoinCircle(c *gin.Context) {
	var in models.CircleJoin
	if !bindJSON(c, &in) {
		return
	}

	result, err := services.JoinCircle(c.Request.Context(), callerFrom(c), in.Invite_Code)
	if err != nil {
		respondError(c, err, "Failed to join prayer circle")
		return
	}

	if result.Already_Member {
		c.JSON(http.StatusOK, gin.H{
			"message":       "You are already a member of " + result.Circle.Circle_Name + ".",
			"alreadyMember": true,
			"circle":        result.Circle,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "You joined " + result.Circle.Circle_Name + "!",
		"alreadyMember": false,
		"circle":        result.Circle,
	})
}

func GetCircle(c *gin.Context) {
	circleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := services.GetCircle(c.Request.Context(), callerFrom(c), circleID)
	if err != nil {
		respondError(c, err, "Failed to load prayer circle")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func ShareRequestToCircle(c *gin.Context) {
	circleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	requestID, ok := parseID(c, "request_id")
	if !ok {
		return
	}

	alreadyShared, err := services.ShareRequest(c.Request.Context(), callerFrom(c), circleID, requestID)
	if err != nil {
		respondError(c, err, "Failed to share prayer request")
		return
	}

	if alreadyShared {
		c.JSON(http.StatusOK, gin.H{"message": "This request is already shared with the circle.", "alreadyShared": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request shared with the circle.", "alreadyShared": false})
}
