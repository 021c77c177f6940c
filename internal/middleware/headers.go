package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id of each request
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's one if sent
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger returns a logrus entry carrying the request id and session user
func Logger(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{"request_id": c.GetString("requestID")}
	if id, ok := UserID(c); ok {
		fields["user_id"] = id
	}
	return logrus.WithFields(fields)
}

// NoCache stops browsers from caching responses
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Expires", "0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
