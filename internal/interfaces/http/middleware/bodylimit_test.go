package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusmarket/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int64
		body     string
		chunked  bool
		wantCode int
	}{
		{name: "listing form within limit", limit: 1024, body: "name=Lamp&price=10", wantCode: http.StatusOK},
		{name: "declared length over limit", limit: 100, body: strings.Repeat("x", 200), wantCode: http.StatusRequestEntityTooLarge},
		{name: "empty body", limit: 10, body: "", wantCode: http.StatusOK},
		{name: "zero limit disables check", limit: 0, body: strings.Repeat("x", 4096), wantCode: http.StatusOK},
		{name: "chunked body capped while reading", limit: 50, body: strings.Repeat("x", 100), chunked: true, wantCode: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(BodyLimit(tt.limit))
			router.POST("/product/new", func(c *gin.Context) {
				if _, err := io.ReadAll(c.Request.Body); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						c.Status(http.StatusRequestEntityTooLarge)
						return
					}
					c.Status(http.StatusBadRequest)
					return
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/product/new", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusRequestEntityTooLarge && !tt.chunked {
				assert.Contains(t, w.Body.String(), dto.ErrCodeBodyTooLarge)
			}
		})
	}
}
