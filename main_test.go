package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter(newSessionStore("test-secret-key"))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "ping", method: http.MethodGet, path: "/ping", expectedStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "christmas eve is public", method: http.MethodGet, path: "/christmas-eve", expectedStatus: http.StatusOK},
		{name: "dashboard needs login", method: http.MethodGet, path: "/admin/dashboard", expectedStatus: http.StatusUnauthorized},
		{name: "creating needs login", method: http.MethodPost, path: "/prayers/create", expectedStatus: http.StatusUnauthorized},
		{name: "my circles needs login", method: http.MethodGet, path: "/circles", expectedStatus: http.StatusUnauthorized},
		{name: "invalid bearer token", method: http.MethodGet, path: "/users/me", expectedStatus: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, path: "/nowhere", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.name == "invalid bearer token" {
				req.Header.Set("Authorization", "Bearer not-a-token")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}
