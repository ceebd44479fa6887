package models

import "time"

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

const (
	ReviewActionDismiss = "dismiss"
	ReviewActionRemove  = "remove"
)

func IsValidReportStatus(status string) bool {
	switch status {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusDismissed:
		return true
	}
	return false
}

type Report struct {
	Report_ID         int        `json:"reportId" goqu:"skipinsert"`
	Prayer_Request_ID int        `json:"prayerRequestId"`
	User_Profile_ID   int        `json:"userProfileId"`
	Reason            string     `json:"reason"`
	Status            string     `json:"status"`
	Reviewed_By       *int       `json:"reviewedBy"`
	Datetime_Reviewed *time.Time `json:"datetimeReviewed"`
	Datetime_Create   time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
}

type ReportCreate struct {
	Reason string `json:"reason"`
}

type ReportReview struct {
	Action string `json:"action"`
}

type ReportWithDetails struct {
	Report
	Title    string `json:"title"`
	Reporter string `json:"reporter"`
}
