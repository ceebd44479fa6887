package models

import "time"

const AnonymousDisplayName = "Anonymous"

var Categories = []string{"Family", "Health", "Finances", "Relationships", "Grief", "Gratitude"}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type PrayerRequest struct {
	Prayer_Request_ID int        `json:"prayerRequestId" goqu:"skipinsert"`
	User_Profile_ID   int        `json:"userProfileId"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Category          string     `json:"category"`
	Bible_Verse       *string    `json:"bibleVerse"`
	Is_Anonymous      bool       `json:"isAnonymous"`
	Is_Private        bool       `json:"isPrivate"`
	Is_Public         bool       `json:"isPublic"`
	Is_Urgent         bool       `json:"isUrgent"`
	Is_Answered       bool       `json:"isAnswered"`
	Testimony         *string    `json:"testimony"`
	Datetime_Answered *time.Time `json:"datetimeAnswered"`
	Datetime_Create   time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update   time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type PrayerRequestCreate struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Category     string  `json:"category"`
	Bible_Verse  *string `json:"bibleVerse"`
	Is_Anonymous bool    `json:"isAnonymous"`
	Is_Private   bool    `json:"isPrivate"`
	Is_Urgent    bool    `json:"isUrgent"`
}

type MarkAnswered struct {
	Testimony string `json:"testimony"`
}

// PrayerRequestRow is a request joined with its owner's username and prayer count.
type PrayerRequestRow struct {
	PrayerRequest
	Username     string `json:"username"`
	Prayer_Count int    `json:"prayerCount"`
}

// PrayerRequestView is the outward representation of a request. Owner_ID and
// Username are nil for anonymous requests.
type PrayerRequestView struct {
	Prayer_Request_ID int        `json:"prayerRequestId"`
	Owner_ID          *int       `json:"ownerId,omitempty"`
	Username          *string    `json:"username,omitempty"`
	Display_Name      string     `json:"displayName"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Category          string     `json:"category"`
	Bible_Verse       *string    `json:"bibleVerse,omitempty"`
	Is_Anonymous      bool       `json:"isAnonymous"`
	Is_Private        bool       `json:"isPrivate"`
	Is_Public         bool       `json:"isPublic"`
	Is_Urgent         bool       `json:"isUrgent"`
	Is_Answered       bool       `json:"isAnswered"`
	Testimony         *string    `json:"testimony,omitempty"`
	Datetime_Answered *time.Time `json:"datetimeAnswered,omitempty"`
	Datetime_Create   time.Time  `json:"datetimeCreate"`
	Datetime_Update   time.Time  `json:"datetimeUpdate"`
	Prayer_Count      int        `json:"prayerCount"`
}

func DisplayName(anonymous bool, username string) string {
	if anonymous {
		return AnonymousDisplayName
	}
	return username
}

func NewPrayerRequestView(row PrayerRequestRow) PrayerRequestView {
	view := PrayerRequestView{
		Prayer_Request_ID: row.Prayer_Request_ID,
		Display_Name:      DisplayName(row.Is_Anonymous, row.Username),
		Title:             row.Title,
		Content:           row.Content,
		Category:          row.Category,
		Bible_Verse:       row.Bible_Verse,
		Is_Anonymous:      row.Is_Anonymous,
		Is_Private:        row.Is_Private,
		Is_Public:         row.Is_Public,
		Is_Urgent:         row.Is_Urgent,
		Is_Answered:       row.Is_Answered,
		Testimony:         row.Testimony,
		Datetime_Answered: row.Datetime_Answered,
		Datetime_Create:   row.Datetime_Create,
		Datetime_Update:   row.Datetime_Update,
		Prayer_Count:      row.Prayer_Count,
	}

	if !row.Is_Anonymous {
		ownerID := row.User_Profile_ID
		username := row.Username
		view.Owner_ID = &ownerID
		view.Username = &username
	}

	return view
}

func NewPrayerRequestViews(rows []PrayerRequestRow) []PrayerRequestView {
	views := make([]PrayerRequestView, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewPrayerRequestView(row))
	}
	return views
}

type RequestDetail struct {
	Request        PrayerRequestView       `json:"request"`
	Prayers        []PrayerWithUser        `json:"prayers"`
	Encouragements []EncouragementWithUser `json:"encouragements"`
	Prayer_Count   int                     `json:"prayerCount"`
	Has_Prayed     bool                    `json:"hasPrayed"`
}

type RequestPage struct {
	Requests    []PrayerRequestView `json:"requests"`
	Page        int                 `json:"page"`
	Per_Page    int                 `json:"perPage"`
	Total       int                 `json:"total"`
	Total_Pages int                 `json:"totalPages"`
	Has_Next    bool                `json:"hasNext"`
	Has_Prev    bool                `json:"hasPrev"`
}

func NewRequestPage(rows []PrayerRequestRow, page, perPage, total int) RequestPage {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return RequestPage{
		Requests:    NewPrayerRequestViews(rows),
		Page:        page,
		Per_Page:    perPage,
		Total:       total,
		Total_Pages: totalPages,
		Has_Next:    page < totalPages,
		Has_Prev:    page > 1,
	}
}
