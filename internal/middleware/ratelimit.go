package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimit applies a process-wide request rate cap.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      false,
				"message": "Demasiadas peticiones, intente mas tarde",
			})
			return
		}
		c.Next()
	}
}

// LoginLimiter throttles credential attempts per email address. The
// counter window starts at the first attempt and expires on its own;
// state is process-local.
type LoginLimiter struct {
	attempts *gocache.Cache
	limit    int64
	window   time.Duration
}

func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts: gocache.New(window, window),
		limit:    int64(limit),
		window:   window,
	}
}

// Limit reads the email from the JSON body, restores the body for the
// handler, and rejects once the attempt count for that email is
// exhausted. Every attempt counts toward the window regardless of
// credential correctness; only the window's expiry clears the counter.
// Requests without a parseable email pass through; the handler's own
// validation deals with them.
func (l *LoginLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Email == "" {
			c.Next()
			return
		}

		// Add fails when the key already exists, which is fine.
		key := "login:" + strings.ToLower(payload.Email)
		_ = l.attempts.Add(key, int64(0), l.window)
		count, err := l.attempts.IncrementInt64(key, 1)
		if err == nil && count > l.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      false,
				"message": "Demasiados intentos de ingreso, intente mas tarde",
			})
			return
		}

		c.Next()
	}
}
