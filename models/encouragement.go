package models

import "time"

type Encouragement struct {
	Encouragement_ID  int       `json:"encouragementId" goqu:"skipinsert"`
	User_Profile_ID   int       `json:"userProfileId"`
	Prayer_Request_ID int       `json:"prayerRequestId"`
	Content           string    `json:"content"`
	Bible_Verse       *string   `json:"bibleVerse"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type EncouragementCreate struct {
	Content     string  `json:"content"`
	Bible_Verse *string `json:"bibleVerse"`
}

type EncouragementWithUser struct {
	Encouragement
	Username string `json:"username"`
}
