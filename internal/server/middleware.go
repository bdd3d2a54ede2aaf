package server

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	sessionRequestsKey = "requests"
	requestStartKey    = "request_start"
)

// stampStart records when the request entered the middleware chain.
func stampStart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// requestStart returns the time stored by stampStart, or now when missing.
func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(requestStartKey); ok {
		if start, ok := v.(time.Time); ok {
			return start
		}
	}
	return time.Now()
}

// countSessionRequests keeps the number of requests made within the caller's
// session cookie and exposes it to later handlers under sessionRequestsKey.
func countSessionRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		count, _ := session.Get(sessionRequestsKey).(int)
		count++
		session.Set(sessionRequestsKey, count)
		if err := session.Save(); err != nil {
			log.Warn("Could not save session: ", err)
		}
		c.Set(sessionRequestsKey, count)
		c.Next()
	}
}

// logRequests logs the caller address of every request once it is served.
func logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := requestStart(c)
		c.Next()

		entry := log.WithFields(log.Fields{
			"ip":               c.ClientIP(),
			"method":           c.Request.Method,
			"path":             c.Request.URL.Path,
			"status":           c.Writer.Status(),
			"latency":          time.Since(start),
			"session_requests": c.GetInt(sessionRequestsKey),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Info("Request served")
	}
}
