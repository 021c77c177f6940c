package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paper_trader/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(s *Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/start", func(c *gin.Context) {
		if err := s.Start(c, 42); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/private", s.Require(), func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "ok": ok})
	})
	r.GET("/clear", s.Require(), func(c *gin.Context) {
		s.Clear(c)
		_, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok})
	})
	return r
}

func TestSession_StartSetsCookie(t *testing.T) {
	s := &Session{Secret: "secret", TTL: time.Hour}
	r := newSessionRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/start", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	claims, err := utils.ParseJWT(cookies[0].Value, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestSession_Require(t *testing.T) {
	s := &Session{Secret: "secret", TTL: time.Hour}
	r := newSessionRouter(s)

	valid, err := utils.GenerateJWT(7, "secret", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(7, "secret", -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT(7, "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
	}{
		{name: "NoCookie", expectedStatus: http.StatusFound},
		{name: "Valid", cookie: valid, expectedStatus: http.StatusOK},
		{name: "Expired", cookie: expired, expectedStatus: http.StatusFound},
		{name: "WrongKey", cookie: foreign, expectedStatus: http.StatusFound},
		{name: "Garbage", cookie: "not-a-token", expectedStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusFound {
				assert.Equal(t, "/login", w.Header().Get("Location"))
				return
			}
			assert.JSONEq(t, `{"user_id":7,"ok":true}`, w.Body.String())
		})
	}
}

func TestSession_Clear(t *testing.T) {
	s := &Session{Secret: "secret", TTL: time.Hour}
	r := newSessionRouter(s)
	token, err := utils.GenerateJWT(7, "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/clear", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
