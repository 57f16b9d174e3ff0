package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID ensures every request carries an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// Logger logs each request and recovers from panics with a generic 500.
// Panic detail never reaches the client in production.
func Logger(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequest(c, start, "panic", err.Error())
				log.Printf("panic_stack request_id=%s stack=%s", c.GetString("request_id"), debug.Stack())

				body := gin.H{"success": false, "message": "Server Error"}
				if !production {
					body["message"] = err.Error()
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
				return
			}

			status := ""
			if c.Writer.Status() >= http.StatusInternalServerError {
				status = "http_error"
			}
			logRequest(c, start, status, "")
		}()

		c.Next()
	}
}

func logRequest(c *gin.Context, start time.Time, errType, message string) {
	log.Printf(
		"request type=%s status=%d method=%s path=%s client_ip=%s user_id=%d role=%s request_id=%s latency=%s error=%q",
		errType,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		c.GetInt64("user_id"),
		c.GetString("role"),
		c.GetString("request_id"),
		time.Since(start),
		message,
	)
}
