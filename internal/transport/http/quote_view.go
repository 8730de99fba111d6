package rest

import (
	"time"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// quoteView - смета в ответе /api/quotes/:id. Денежные значения - строки с двумя знаками.
type quoteView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ShareUUID   string     `json:"shareUuid,omitempty"`
	ViewCount   int        `json:"viewCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	ItemCount   int        `json:"itemCount"`
	TotalPrice  string     `json:"totalPrice"`
	Items       []itemView `json:"items"`
}

type itemView struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

func newQuoteView(q *domain.Quote) quoteView {
	items := make([]itemView, 0, len(q.Items))
	for i := range q.Items {
		it := &q.Items[i]
		items = append(items, itemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Category:  it.Product.Category.Name,
			UnitPrice: it.Product.Price.StringFixed(2),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}
	return quoteView{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		ShareUUID:   q.ShareUUID,
		ViewCount:   q.ViewCount,
		CreatedAt:   q.CreatedAt,
		ItemCount:   len(items),
		TotalPrice:  q.TotalPrice().StringFixed(2),
		Items:       items,
	}
}
