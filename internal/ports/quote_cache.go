package ports

import (
	"context"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// QuoteCache - интерфейс кэша загруженных смет.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type QuoteCache interface {
	// Get - вернуть смету по ID; (quote, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, quoteID int64) (*domain.Quote, bool)

	// Set - сохранить/обновить смету в кэше.
	Set(ctx context.Context, quote *domain.Quote) error

	// Delete - удалить смету (смета изменилась во внешней системе); true, если запись была в кэше.
	Delete(ctx context.Context, quoteID int64) bool

	// WarmUp - массовая загрузка кэша (например, при старте).
	WarmUp(ctx context.Context, quotes []*domain.Quote) error
}
