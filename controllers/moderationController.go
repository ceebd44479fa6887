package controllers

import (
	"net/http"

	"github.com/PrayNoel/models"
	"github.com/PrayNoel/services"
	"github.com/gin-gonic/gin"
)

func ReportPrayerRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in models.ReportCreate
	if !bindJSON(c, &in) {
		return
	}

	if _, err := services.Report(c.Request.Context(), callerFrom(c), requestID, in); err != nil {
		respondError(c, err, "Failed to submit report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you. Our moderators will review this request."})
}

func GetReports(c *gin.Context) {
	status := c.DefaultQuery("status", models.ReportStatusPending)

	reports, err := services.ListReports(c.Request.Context(), callerFrom(c), status)
	if err != nil {
		respondError(c, err, "Failed to load reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status, "reports": reports})
}

func ReviewReport(c *gin.Context) {
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in models.ReportReview
	if !bindJSON(c, &in) {
		return
	}

	report, err := services.ReviewReport(c.Request.Context(), callerFrom(c), reportID, in.Action)
	if err != nil {
		respondError(c, err, "Failed to review report")
		return
	}

	message := "Report dismissed."
	if in.Action == models.ReviewActionRemove {
		message = "Prayer request removed from public view."
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "report": report})
}

func TogglePublic(c *gin.Context) {
	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}

	isPublic, err := services.TogglePublic(c.Request.Context(), callerFrom(c), requestID)
	if err != nil {
		respondError(c, err, "Failed to update prayer request")
		return
	}

	message := "Prayer request hidden from public view."
	if isPublic {
		message = "Prayer request is now public."
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "isPublic": isPublic})
}

func ToggleAdmin(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	isAdmin, err := services.ToggleAdmin(c.Request.Context(), callerFrom(c), userID)
	if err != nil {
		respondError(c, err, "Failed to update admin status")
		return
	}

	message := "Admin privileges removed."
	if isAdmin {
		message = "Admin privileges granted."
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "admin": isAdmin})
}

func GetAdminDashboard(c *gin.Context) {
	dashboard, err := services.AdminDashboard(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func GetAdminRequests(c *gin.Context) {
	page, err := services.AdminRequests(c.Request.Context(), callerFrom(c), parsePage(c))
	if err != nil {
		respondError(c, err, "Failed to load prayer requests")
		return
	}

	c.JSON(http.StatusOK, page)
}

func GetUsers(c *gin.Context) {
	users, err := services.ListUsers(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
