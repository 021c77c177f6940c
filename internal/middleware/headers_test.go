package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requestID"))
	})

	incoming := uuid.NewString()
	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "Generated"},
		{name: "Reused", header: incoming, reuse: true},
		{name: "InvalidReplaced", header: "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			_, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, w.Body.String())
			if tt.reuse {
				assert.Equal(t, incoming, id)
			} else {
				assert.NotEqual(t, tt.header, id)
			}
		})
	}
}

func TestNoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NoCache())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
}
