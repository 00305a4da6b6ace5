package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	tests := []struct {
		name          string
		requestHeader string
		expectNewID   bool
	}{
		{
			name:          "new ID generated when header not present",
			requestHeader: "",
			expectNewID:   true,
		},
		{
			name:          "existing ID preserved when header present",
			requestHeader: "test-correlation-id-123",
			expectNewID:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CorrelationID())
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"correlation_id": GetCorrelationID(c)})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestHeader != "" {
				req.Header.Set(CorrelationIDHeader, tt.requestHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			echoed := w.Header().Get(CorrelationIDHeader)
			assert.NotEmpty(t, echoed)
			if tt.expectNewID {
				assert.NotEqual(t, tt.requestHeader, echoed)
			} else {
				assert.Equal(t, tt.requestHeader, echoed)
			}
		})
	}
}

func TestCorrelationIDContextPropagation(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}
