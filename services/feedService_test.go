package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page           int
		expectedPage   int
		expectedOffset uint
	}{
		{page: -3, expectedPage: 1, expectedOffset: 0},
		{page: 0, expectedPage: 1, expectedOffset: 0},
		{page: 1, expectedPage: 1, expectedOffset: 0},
		{page: 4, expectedPage: 4, expectedOffset: 60},
	}

	for _, tt := range tests {
		page, offset := normalizePage(tt.page, 20)
		assert.Equal(t, tt.expectedPage, page)
		assert.Equal(t, tt.expectedOffset, offset)
	}
}

func TestFillCategories(t *testing.T) {
	filled := fillCategories([]models.CategoryCount{
		{Category: "Health", Count: 4},
		{Category: "Gratitude", Count: 1},
	})

	require.Len(t, filled, len(models.Categories))
	for i, category := range models.Categories {
		assert.Equal(t, category, filled[i].Category)
	}
	assert.Equal(t, 0, filled[0].Count)
	assert.Equal(t, 4, filled[1].Count)
	assert.Equal(t, 1, filled[5].Count)
}

func TestListFeed(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		sort          string
		page          int
		countQuery    string
		selectQuery   string
		total         int
		rows          []requestRow
		expectedPages int
	}{
		{
			name:          "recent",
			sort:          "",
			page:          1,
			countQuery:    `SELECT COUNT\(\*\) AS "count" FROM "prayer_request" AS "pr" WHERE \(\("pr"."is_public" IS TRUE\) AND \("pr"."is_private" IS FALSE\)\)`,
			selectQuery:   `ORDER BY "pr"."datetime_create" DESC LIMIT 20$`,
			total:         2,
			rows:          []requestRow{{id: 2, owner: 1}, {id: 1, owner: 1}},
			expectedPages: 1,
		},
		{
			name:          "most prayed in a category",
			category:      "Health",
			sort:          SortMostPrayed,
			page:          1,
			countQuery:    `FROM "prayer_request" AS "pr" WHERE .*\("pr"."category" = 'Health'\)`,
			selectQuery:   `ORDER BY COALESCE\("pc"."prayer_count", 0\) DESC, "pr"."datetime_create" DESC LIMIT 20$`,
			total:         2,
			rows:          []requestRow{{id: 1, owner: 1, prayers: 9}, {id: 2, owner: 1}},
			expectedPages: 1,
		},
		{
			name:          "urgent",
			category:      "all",
			sort:          SortUrgent,
			page:          2,
			countQuery:    `FROM "prayer_request" AS "pr" WHERE .*\("pr"."is_urgent" IS TRUE\)`,
			selectQuery:   `"pr"."is_urgent" IS TRUE.* ORDER BY "pr"."datetime_create" DESC LIMIT 20 OFFSET 20$`,
			total:         21,
			rows:          []requestRow{{id: 1, owner: 1}},
			expectedPages: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			mock.ExpectQuery(tt.countQuery).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.total))
			mock.ExpectQuery(tt.selectQuery).WillReturnRows(mockRequestRows(tt.rows...))

			page, err := ListFeed(context.Background(), tt.category, tt.sort, tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.page, page.Page)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.expectedPages, page.Total_Pages)
			assert.Len(t, page.Requests, len(tt.rows))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListFeedPastLastPage(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`LIMIT 20 OFFSET 160$`).WillReturnRows(mockRequestRows())

	page, err := ListFeed(context.Background(), "", SortRecent, 9)
	require.NoError(t, err)

	assert.Empty(t, page.Requests)
	assert.False(t, page.Has_Next)
	assert.True(t, page.Has_Prev)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFeedUnknownCategory(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := ListFeed(context.Background(), "Sports", SortRecent, 1)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "category", validation.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrayerTree(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT "pr"."category", COUNT\(\*\) AS "count" FROM "prayer" AS "p" INNER JOIN "prayer_request" AS "pr" .* GROUP BY "pr"."category"`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("Health", 7).
			AddRow("Family", 3))

	tree, err := PrayerTree(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, tree.Total_Prayers)
	assert.Len(t, tree.Category_Counts, len(models.Categories))
	assert.Equal(t, models.CategoryCount{Category: "Family", Count: 3}, tree.Category_Counts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHome(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	freezeClock(t, time.Date(2025, time.December, 24, 8, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`INNER JOIN "daily_featured_prayer" AS "f" .*'2025-12-24'`).
		WillReturnRows(mockRequestRows(requestRow{id: 3, owner: 1, prayers: 2}))
	mock.ExpectQuery(`FROM "prayer_request" AS "pr" .* LIMIT 6$`).
		WillReturnRows(mockRequestRows(requestRow{id: 4, owner: 1}, requestRow{id: 3, owner: 1}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "prayer" LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "prayer_request" AS "pr" WHERE \(\("pr"."is_public" IS TRUE\) AND \("pr"."is_private" IS FALSE\)\) LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`"pr"."is_private" IS FALSE.*"pr"."is_answered" IS TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	home, err := Home(context.Background())
	require.NoError(t, err)

	require.NotNil(t, home.Featured)
	assert.Equal(t, 3, home.Featured.Prayer_Request_ID)
	assert.Len(t, home.Recent_Requests, 2)
	assert.Equal(t, models.CommunityTotals{Total_Prayers: 30, Total_Requests: 8, Answered_Requests: 2}, home.Totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}
