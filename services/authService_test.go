package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func useSecret(t *testing.T, secret string) {
	original := initializers.Config.SecretKey
	initializers.Config.SecretKey = secret
	t.Cleanup(func() { initializers.Config.SecretKey = original })
}

func TestValidateSignup(t *testing.T) {
	valid := models.UserProfileSignup{
		Username:         "noel",
		Email:            "noel@example.com",
		Password:         "password123",
		Confirm_Password: "password123",
	}

	tests := []struct {
		name   string
		modify func(*models.UserProfileSignup)
		field  string
	}{
		{name: "valid", modify: func(*models.UserProfileSignup) {}},
		{name: "short username", modify: func(s *models.UserProfileSignup) { s.Username = "no" }, field: "username"},
		{name: "padded short username", modify: func(s *models.UserProfileSignup) { s.Username = "  ab  " }, field: "username"},
		{name: "bad email", modify: func(s *models.UserProfileSignup) { s.Email = "not-an-email" }, field: "email"},
		{name: "display name email", modify: func(s *models.UserProfileSignup) { s.Email = "Noel <noel@example.com>" }, field: "email"},
		{name: "email without domain suffix", modify: func(s *models.UserProfileSignup) { s.Email = "noel@localhost" }, field: "email"},
		{name: "empty email", modify: func(s *models.UserProfileSignup) { s.Email = "" }, field: "email"},
		{name: "short password", modify: func(s *models.UserProfileSignup) { s.Password, s.Confirm_Password = "12345", "12345" }, field: "password"},
		{name: "mismatched confirmation", modify: func(s *models.UserProfileSignup) { s.Confirm_Password = "password124" }, field: "confirmPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signup := valid
			tt.modify(&signup)

			err := validateSignup(signup)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var validation *ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestRegister(t *testing.T) {
	signup := models.UserProfileSignup{
		Username:         "noel",
		Email:            "Noel@Example.com",
		Password:         "password123",
		Confirm_Password: "password123",
	}

	t.Run("username taken", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "user_profile" WHERE \("username" = 'noel'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := Register(context.Background(), signup)
		var validation *ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, "username", validation.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email registered", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		mock.ExpectQuery(`FROM "user_profile" WHERE \("username" = 'noel'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM "user_profile" WHERE \("email" = 'noel@example.com'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := Register(context.Background(), signup)
		var validation *ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, "email", validation.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates account", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()

		mock.ExpectQuery(`FROM "user_profile" WHERE \("username" = 'noel'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM "user_profile" WHERE \("email" = 'noel@example.com'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "user_profile" .* RETURNING "user_profile_id"`).
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).AddRow(4))

		user, err := Register(context.Background(), signup)
		require.NoError(t, err)

		assert.Equal(t, 4, user.User_Profile_ID)
		assert.Equal(t, "noel@example.com", user.Email)
		assert.False(t, user.Admin)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"user_profile_id", "username", "email", "password", "admin"}).
			AddRow(1, "noel", "noel@example.com", string(hash), false)
	}

	tests := []struct {
		name        string
		login       models.Login
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:  "valid credentials",
			login: models.Login{Email: " NOEL@example.com ", Password: "password123"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "user_profile" WHERE \("email" = 'noel@example.com'\)`).WillReturnRows(userRows())
			},
		},
		{
			name:  "wrong password",
			login: models.Login{Email: "noel@example.com", Password: "wrong"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "user_profile"`).WillReturnRows(userRows())
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:  "unknown email",
			login: models.Login{Email: "ghost@example.com", Password: "password123"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "user_profile"`).WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}))
			},
			expectedErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := Authenticate(context.Background(), tt.login)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "noel", user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	useSecret(t, "test-secret-key")

	token, err := IssueToken(models.UserProfile{User_Profile_ID: 9, Admin: true})
	require.NoError(t, err)

	id, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Claims.(jwt.MapClaims)["role"])
}

func TestParseTokenRejects(t *testing.T) {
	useSecret(t, "test-secret-key")

	sign := func(claims jwt.MapClaims, secret string) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: sign(jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()}, "other-secret")},
		{name: "expired", token: sign(jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Hour).Unix()}, "test-secret-key")},
		{name: "missing id", token: sign(jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, "test-secret-key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token)
			assert.Equal(t, ErrUnauthenticated, err)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, ErrUnauthenticated, RequireAdmin(models.Caller{}))
	assert.True(t, errors.Is(RequireAdmin(models.Caller{User_Profile_ID: 1}), ErrForbidden))
	assert.NoError(t, RequireAdmin(models.Caller{User_Profile_ID: 1, Admin: true}))
}
