package models

import "time"

type Prayer struct {
	Prayer_ID         int       `json:"prayerId" goqu:"skipinsert"`
	User_Profile_ID   int       `json:"userProfileId"`
	Prayer_Request_ID int       `json:"prayerRequestId"`
	Prayer_Note       *string   `json:"prayerNote"`
	Is_Private        bool      `json:"isPrivate"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type PrayerNoteCreate struct {
	Prayer_Note string `json:"prayerNote"`
	Is_Private  bool   `json:"isPrivate"`
}

type PrayerWithUser struct {
	Prayer
	Username string `json:"username"`
}

type PrayerWithRequest struct {
	Prayer
	Title string `json:"title"`
}

type PrayResult struct {
	Prayer_ID      int  `json:"prayerId,omitempty"`
	Already_Prayed bool `json:"alreadyPrayed"`
}

type MyPrayers struct {
	Prayers     []PrayerWithRequest `json:"prayers"`
	Today_Count int                 `json:"todayCount"`
	Total       int                 `json:"total"`
}

type PrayerStats struct {
	Prayer_Stats_ID int       `json:"prayerStatsId" goqu:"skipinsert"`
	User_Profile_ID int       `json:"userProfileId"`
	Stat_Date       time.Time `json:"statDate"`
	Prayers_Offered int       `json:"prayersOffered"`
}
