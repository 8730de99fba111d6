package ports

import (
	"context"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// QuoteReadService - сервис чтения смет и проверки совместимости (для HTTP-слоя).
type QuoteReadService interface {
	CheckQuote(ctx context.Context, quoteID int64) (*domain.Report, error)
	GetQuote(ctx context.Context, quoteID int64) (*domain.Quote, error)
}
