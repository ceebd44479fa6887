package controllers

import (
	"net/http"
	"time"

	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func GetFeaturedPrayers(c *gin.Context) {
	listing, err := services.ListFeatured(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load featured prayers")
		return
	}

	c.JSON(http.StatusOK, listing)
}

func SetFeaturedPrayer(c *gin.Context) {
	var in models.FeaturedPrayerSet
	if !bindJSON(c, &in) {
		return
	}

	if err := services.SetFeaturedPrayer(c.Request.Context(), callerFrom(c), in); err != nil {
		respondError(c, err, "Failed to set featured prayer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Featured prayer set for " + in.Featured_Date + "."})
}

func GetAdvent(c *gin.Context) {
	calendar, err := services.GetAdventReflections(c.Request.Context(), services.AdventDay(time.Now()))
	if err != nil {
		respondError(c, err, "Failed to load Advent reflections")
		return
	}

	c.JSON(http.StatusOK, calendar)
}

func GetChristmasEve(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prayerTime": services.ChristmasEve()})
}
