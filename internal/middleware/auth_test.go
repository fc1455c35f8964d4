package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShareRouter(share *services.ShareService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/files/:id", ShareTokenAuth(share), func(c *gin.Context) {
		id, _ := GetShareGrant(c)
		c.String(http.StatusOK, id)
	})
	return router
}

func TestShareTokenAuth(t *testing.T) {
	share := services.NewShareService("secret", time.Hour)
	router := setupShareRouter(share)

	token, _, err := share.Issue("abc")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"query token", "/files/abc?token=" + token, "", http.StatusOK},
		{"bearer token", "/files/abc", "Bearer " + token, http.StatusOK},
		{"missing token", "/files/abc", "", http.StatusUnauthorized},
		{"garbage token", "/files/abc?token=nope", "", http.StatusUnauthorized},
		{"other composition", "/files/xyz?token=" + token, "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "abc", w.Body.String())
			}
		})
	}
}

func TestShareTokenAuth_Disabled(t *testing.T) {
	router := setupShareRouter(services.NewShareService("", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/abc?token=x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
