package ports

import (
	"context"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// QuoteRepository - чтение смет вместе с позициями, товарами, категориями и характеристиками.
type QuoteRepository interface {
	// GetByID - смета целиком; (nil, nil), если записи нет.
	GetByID(ctx context.Context, quoteID int64) (*domain.Quote, error)
	LastN(ctx context.Context, n int) ([]*domain.Quote, error)
	// QuoteIDsByProduct - сметы, содержащие товар; пустой срез, если таких нет.
	QuoteIDsByProduct(ctx context.Context, productID int64) ([]int64, error)
}
