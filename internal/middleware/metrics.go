package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestObserver records per-request HTTP metrics.
type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// unmatchedRoute labels requests that did not hit a registered route.
const unmatchedRoute = "unmatched"

// Metrics records the duration and status of every routed request. Scrapes of
// skipPath are not recorded.
func Metrics(observer requestObserver, skipPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil || (skipPath != "" && c.Request.URL.Path == skipPath) {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
