package controllers

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/models"
	"golang.org/x/crypto/bcrypt"
)

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "testuser",
		Email:           "test@example.com",
		Admin:           false,
		Datetime_Create: time.Now(),
	}
}

// MockUserWithPassword is MockUser with the bcrypt hash of "password123"
func MockUserWithPassword() models.UserProfile {
	user := MockUser()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user.Password = string(hashedPassword)
	return user
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "adminuser",
		Email:           "admin@example.com",
		Admin:           true,
		Datetime_Create: time.Now(),
	}
}

var requestRowColumns = []string{
	"prayer_request_id", "user_profile_id", "title", "content", "category", "bible_verse",
	"is_anonymous", "is_private", "is_public", "is_urgent", "is_answered", "testimony",
	"datetime_answered", "datetime_create", "datetime_update", "username", "prayer_count",
}

// MockRequestRows returns joined request rows as the feed queries select them
func MockRequestRows() *sqlmock.Rows {
	return sqlmock.NewRows(requestRowColumns)
}

// AddMockRequestRow appends a public request owned by user 1
func AddMockRequestRow(rows *sqlmock.Rows, id int, anonymous, private bool, prayerCount int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, 1, "Healing for my mother", "Please pray for her recovery this week.", "Health", nil,
		anonymous, private, true, false, false, nil,
		nil, now, now, "testuser", prayerCount,
	)
}
