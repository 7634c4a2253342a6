package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an id and logs start and finish
// with method, path, caller and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set("request_id", requestId)
		c.Header("X-Request-Id", requestId)

		start := time.Now()
		log.Printf("[%s] --> %s %s from %s", requestId, c.Request.Method, c.Request.URL.Path, c.ClientIP())

		c.Next()

		log.Printf("[%s] <-- %s %s %d (%s)", requestId, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
