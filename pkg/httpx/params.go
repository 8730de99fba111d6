package httpx

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrQuoteIDRequired = errors.New("quoteId is required")
	ErrInvalidQuoteID  = errors.New("quoteId must be a positive integer")
)

// ParseQuoteID - разбирает идентификатор сметы из query/path.
// Пустое значение -> ErrQuoteIDRequired; не целое или не положительное -> ErrInvalidQuoteID.
func ParseQuoteID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrQuoteIDRequired
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidQuoteID
	}
	return id, nil
}
