// Пакет ctxmeta - метаданные запроса, которые передаются через context.Context
// (request_id, quote_id, trace_id). HTTP-слой и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyQuoteID   ctxKey = "quote_id"
)

// WithRequestID кладёт request_id в контекст (пустое значение игнорируется).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithQuoteID кладёт ID проверяемой сметы; неположительный ID игнорируется.
func WithQuoteID(ctx context.Context, quoteID int64) context.Context {
	if ctx == nil || quoteID <= 0 {
		return ctx
	}
	return context.WithValue(ctx, KeyQuoteID, quoteID)
}

func QuoteIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	if v, ok := ctx.Value(KeyQuoteID).(int64); ok && v > 0 {
		return v, true
	}
	return 0, false
}
