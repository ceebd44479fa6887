package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser does what CheckAuth does for a resolved user
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile, isAdmin bool) {
	c.Set("currentUser", user)
	c.Set("admin", isAdmin)
}

// SetJSONRequest attaches a JSON body request to the context
func SetJSONRequest(c *gin.Context, method, path string, body interface{}) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
}

func decodeResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return response
}
