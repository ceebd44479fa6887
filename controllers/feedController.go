package controllers

import (
	"net/http"

	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func GetFeed(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	sort := c.DefaultQuery("sort", services.SortRecent)

	page, err := services.ListFeed(c.Request.Context(), category, sort, parsePage(c))
	if err != nil {
		respondError(c, err, "Failed to load prayer requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":   category,
		"sort":       sort,
		"requests":   page.Requests,
		"page":       page.Page,
		"perPage":    page.Per_Page,
		"total":      page.Total,
		"totalPages": page.Total_Pages,
		"hasNext":    page.Has_Next,
		"hasPrev":    page.Has_Prev,
	})
}

func GetHome(c *gin.Context) {
	home, err := services.Home(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load home page")
		return
	}

	c.JSON(http.StatusOK, home)
}

func GetCommunityImpact(c *gin.Context) {
	impact, err := services.CommunityImpact(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load community impact")
		return
	}

	c.JSON(http.StatusOK, impact)
}

func GetPrayerTree(c *gin.Context) {
	tree, err := services.PrayerTree(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load prayer tree")
		return
	}

	c.JSON(http.StatusOK, tree)
}
