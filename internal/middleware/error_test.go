package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name     string
		panicVal any
		expected string
	}{
		{"error value", errors.New("Test error"), `{"error":"Test error"}`},
		{"string value", "boom", `{"error":"boom"}`},
		{"empty message", "", `{"error":"An internal server error occurred."}`},
		{"other value", 42, `{"error":"42"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Recovery())
			router.POST("/", func(c *gin.Context) {
				panic(tt.panicVal)
			})

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, tt.expected, rr.Body.String())
		})
	}
}

func TestRecoveryPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
