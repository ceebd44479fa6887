package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/initializers"
	"github.com/doug-martin/goqu/v9"
)

func setupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	oldDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = oldDB
	}

	return mock, cleanup
}

// freezeClock pins now() to the given instant for the duration of a test.
func freezeClock(t *testing.T, at time.Time) {
	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}

var requestRowColumns = []string{
	"prayer_request_id", "user_profile_id", "title", "content", "category", "bible_verse",
	"is_anonymous", "is_private", "is_public", "is_urgent", "is_answered", "testimony",
	"datetime_answered", "datetime_create", "datetime_update", "username", "prayer_count",
}

type requestRow struct {
	id, owner, prayers         int
	anonymous, private, hidden bool
}

func mockRequestRows(rows ...requestRow) *sqlmock.Rows {
	mockRows := sqlmock.NewRows(requestRowColumns)
	created := time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)
	for _, r := range rows {
		mockRows.AddRow(
			r.id, r.owner, "Healing for my mother", "Please pray for her recovery this week.", "Health", nil,
			r.anonymous, r.private, !r.hidden, false, false, nil,
			nil, created, created, "noel", r.prayers,
		)
	}
	return mockRows
}
