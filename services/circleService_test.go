package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var circleColumns = []string{"prayer_circle_id", "circle_name", "invite_code", "created_by"}

func TestGenerateInviteCode(t *testing.T) {
	format := regexp.MustCompile(`^CIRCLE-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := generateInviteCode()
		require.NoError(t, err)
		assert.Regexp(t, format, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestCreateCircle(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "prayer_circle" .*'Tuesday Group'.* RETURNING "prayer_circle_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"prayer_circle_id"}).AddRow(4))
	mock.ExpectExec(`INSERT INTO "circle_member" \("prayer_circle_id", "user_profile_id"\) VALUES \(4, 1\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	circle, err := CreateCircle(context.Background(), models.Caller{User_Profile_ID: 1}, models.PrayerCircleCreate{Circle_Name: " Tuesday Group "})
	require.NoError(t, err)

	assert.Equal(t, 4, circle.Prayer_Circle_ID)
	assert.Equal(t, "Tuesday Group", circle.Circle_Name)
	assert.Equal(t, 1, circle.Created_By)
	assert.Regexp(t, `^CIRCLE-[0-9A-F]{6}$`, circle.Invite_Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCircleRetriesCodeCollision(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "prayer_circle"`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "prayer_circle"`).
		WillReturnRows(sqlmock.NewRows([]string{"prayer_circle_id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO "circle_member"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	circle, err := CreateCircle(context.Background(), models.Caller{User_Profile_ID: 1}, models.PrayerCircleCreate{Circle_Name: "Tuesday Group"})
	require.NoError(t, err)
	assert.Equal(t, 5, circle.Prayer_Circle_ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCircleShortName(t *testing.T) {
	_, err := CreateCircle(context.Background(), models.Caller{User_Profile_ID: 1}, models.PrayerCircleCreate{Circle_Name: "ab"})

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "circleName", validation.Field)
}

func TestJoinCircle(t *testing.T) {
	member := models.Caller{User_Profile_ID: 3}

	tests := []struct {
		name          string
		code          string
		setupMock     func(sqlmock.Sqlmock)
		expectedErr   error
		alreadyMember bool
	}{
		{
			name: "unknown code",
			code: "CIRCLE-000000",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "prayer_circle" WHERE \("invite_code" = 'CIRCLE-000000'\)`).
					WillReturnRows(sqlmock.NewRows(circleColumns))
			},
			expectedErr: ErrNotFound,
		},
		{
			name: "already a member",
			code: "CIRCLE-A1B2C3",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "prayer_circle"`).
					WillReturnRows(sqlmock.NewRows(circleColumns).AddRow(4, "Tuesday Group", "CIRCLE-A1B2C3", 1))
				mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "circle_member"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			},
			alreadyMember: true,
		},
		{
			name: "lowercase code joins",
			code: " circle-a1b2c3 ",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "prayer_circle" WHERE \("invite_code" = 'CIRCLE-A1B2C3'\)`).
					WillReturnRows(sqlmock.NewRows(circleColumns).AddRow(4, "Tuesday Group", "CIRCLE-A1B2C3", 1))
				mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "circle_member"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO "circle_member" .* VALUES \(4, 3\) ON CONFLICT DO NOTHING`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := JoinCircle(context.Background(), member, tt.code)
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.alreadyMember, result.Already_Member)
				assert.Equal(t, 4, result.Circle.Prayer_Circle_ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetCircleNonMember(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`FROM "prayer_circle" WHERE \("prayer_circle_id" = 4\)`).
		WillReturnRows(sqlmock.NewRows(circleColumns).AddRow(4, "Tuesday Group", "CIRCLE-A1B2C3", 1))
	mock.ExpectQuery(`FROM "circle_member"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := GetCircle(context.Background(), models.Caller{User_Profile_ID: 9}, 4)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCircle(t *testing.T) {
	mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`FROM "prayer_circle"`).
		WillReturnRows(sqlmock.NewRows(circleColumns).AddRow(4, "Tuesday Group", "CIRCLE-A1B2C3", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "circle_member"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM "circle_member" AS "cm" INNER JOIN "user_profile" AS "u"`).
		WillReturnRows(sqlmock.NewRows([]string{"circle_member_id", "prayer_circle_id", "user_profile_id", "username"}).
			AddRow(1, 4, 1, "noel").
			AddRow(2, 4, 3, "friend"))
	mock.ExpectQuery(`INNER JOIN "circle_request" AS "cr" .*"pr"."is_public" IS TRUE`).
		WillReturnRows(mockRequestRows(requestRow{id: 10, owner: 1}))

	detail, err := GetCircle(context.Background(), models.Caller{User_Profile_ID: 3}, 4)
	require.NoError(t, err)

	assert.Equal(t, "Tuesday Group", detail.Circle.Circle_Name)
	assert.Len(t, detail.Members, 2)
	require.Len(t, detail.Requests, 1)
	assert.Equal(t, 10, detail.Requests[0].Prayer_Request_ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRequest(t *testing.T) {
	owner := models.Caller{User_Profile_ID: 1}

	expectMembership := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(`FROM "prayer_circle"`).
			WillReturnRows(sqlmock.NewRows(circleColumns).AddRow(4, "Tuesday Group", "CIRCLE-A1B2C3", 1))
		mock.ExpectQuery(`FROM "circle_member"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}

	t.Run("first share", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		expectMembership(mock)
		mockRequestLookup(mock, 10, 1)
		mock.ExpectQuery(`INSERT INTO "circle_request" .* ON CONFLICT DO NOTHING RETURNING "circle_request_id"`).
			WillReturnRows(sqlmock.NewRows([]string{"circle_request_id"}).AddRow(1))

		alreadyShared, err := ShareRequest(context.Background(), owner, 4, 10)
		require.NoError(t, err)
		assert.False(t, alreadyShared)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second share", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		expectMembership(mock)
		mockRequestLookup(mock, 10, 1)
		mock.ExpectQuery(`INSERT INTO "circle_request"`).WillReturnRows(sqlmock.NewRows([]string{"circle_request_id"}))

		alreadyShared, err := ShareRequest(context.Background(), owner, 4, 10)
		require.NoError(t, err)
		assert.True(t, alreadyShared)
	})

	t.Run("someone else's request", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		expectMembership(mock)
		mockRequestLookup(mock, 10, 7)

		_, err := ShareRequest(context.Background(), owner, 4, 10)
		assert.True(t, errors.Is(err, ErrForbidden))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
