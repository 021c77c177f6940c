package middleware

import (
	"net/http" // HTTP status codes
	"time"

	"paper_trader/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "session"

const userIDKey = "userID"

// Session issues and checks session cookies
type Session struct {
	Secret string        // Token signing key
	TTL    time.Duration // Session lifetime
	Secure bool          // Send the cookie over HTTPS only
}

// Start logs userID in by setting a fresh session cookie
func (s *Session) Start(c *gin.Context, userID uint) error {
	token, err := utils.GenerateJWT(userID, s.Secret, s.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
	c.Set(userIDKey, userID)
	return nil
}

// Clear forgets any session identity on this request and in the browser
func (s *Session) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.Secure, true)
	delete(c.Keys, userIDKey)
}

// Require lets the request through only with a valid session, otherwise it
// redirects to the login page
func (s *Session) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Get the session cookie
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		claims, err := utils.ParseJWT(token, s.Secret) // Parse the session token
		if err != nil {
			s.Clear(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.UserID) // Store userID in context
		c.Next()                        // Proceed to the next handler
	}
}

// UserID returns the session user of the request
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
