package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Коды ошибок в теле ответа.
const (
	CodeQuoteIDRequired  = "QUOTE_ID_REQUIRED"
	CodeInvalidQuoteID   = "INVALID_QUOTE_ID"
	CodeQuoteNotFound    = "QUOTE_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeTimeout          = "TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse - единый формат тела для всех ответов с ошибкой.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}

// WriteError - прерывает обработку и отдаёт ErrorResponse.
func WriteError(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
		Status:    status,
		Code:      code,
		Message:   message,
	})
}
