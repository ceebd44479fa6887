package controllers

import (
	"net/http"

	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func CreatePrayerRequest(c *gin.Context) {
	var in models.PrayerRequestCreate
	if !bindJSON(c, &in) {
		return
	}

	request, err := services.CreateRequest(c.Request.Context(), callerFrom(c), in)
	if err != nil {
		respondError(c, err, "Failed to create prayer request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Your prayer request has been shared with the community.",
		"prayerRequestId": request.Prayer_Request_ID,
	})
}

func ViewPrayerRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := services.ViewRequest(c.Request.Context(), callerFrom(c), requestID)
	if err != nil {
		respondError(c, err, "Failed to load prayer request")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func MarkPrayerAnswered(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in models.MarkAnswered
	if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
		return
	}

	if err := services.MarkAnswered(c.Request.Context(), callerFrom(c), requestID, in.Testimony); err != nil {
		respondError(c, err, "Failed to mark prayer as answered")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Praise God! Your prayer has been marked as answered."})
}

func DeletePrayerRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteRequest(c.Request.Context(), callerFrom(c), requestID); err != nil {
		respondError(c, err, "Failed to delete prayer request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted."})
}

func GetMyRequests(c *gin.Context) {
	requests, err := services.MyRequests(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load your prayer requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func GetAnsweredRequests(c *gin.Context) {
	page, err := services.AnsweredRequests(c.Request.Context(), parsePage(c))
	if err != nil {
		respondError(c, err, "Failed to load answered prayers")
		return
	}

	c.JSON(http.StatusOK, page)
}

func PrayForRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := services.Pray(c.Request.Context(), callerFrom(c), requestID)
	respondPrayed(c, result, err)
}

// PrayWithNote accepts an optional body; an empty one records a plain prayer.
func PrayWithNote(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var note models.PrayerNoteCreate
	if c.Request.ContentLength != 0 && !bindJSON(c, &note) {
		return
	}

	result, err := services.PrayWithNote(c.Request.Context(), callerFrom(c), requestID, note)
	respondPrayed(c, result, err)
}

func respondPrayed(c *gin.Context, result models.PrayResult, err error) {
	if err != nil {
		respondError(c, err, "Failed to record prayer")
		return
	}

	if result.Already_Prayed {
		c.JSON(http.StatusOK, gin.H{"message": services.AlreadyPrayedNotice, "alreadyPrayed": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Thank you for praying! Your prayer has been recorded.",
		"alreadyPrayed": false,
		"prayerId":      result.Prayer_ID,
	})
}

func EncourageRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in models.EncouragementCreate
	if !bindJSON(c, &in) {
		return
	}

	encouragement, err := services.Encourage(c.Request.Context(), callerFrom(c), requestID, in)
	if err != nil {
		respondError(c, err, "Failed to send encouragement")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Your encouragement has been sent!",
		"encouragementId": encouragement.Encouragement_ID,
	})
}

func GetMyPrayers(c *gin.Context) {
	prayers, err := services.MyPrayers(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load your prayers")
		return
	}

	c.JSON(http.StatusOK, prayers)
}
