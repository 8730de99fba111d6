package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger - middleware для логирования HTTP-запросов (кроме /metrics и /ping).
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		// request_id/trace_id добавит логгер из контекста
		ctx := c.Request.Context()
		status := c.Writer.Status()
		logf := log.Infof
		if status >= http.StatusInternalServerError {
			logf = log.Errorf
		}
		logf(ctx,
			"request method=%s path=%s query=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Request.URL.RawQuery,
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
