package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote - смета (сборка ПК): набор позиций с товарами.
type Quote struct {
	ID          int64       `json:"id"`
	UserID      *int64      `json:"userId,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ShareUUID   string      `json:"shareUuid,omitempty"`
	ViewCount   int         `json:"viewCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Items       []QuoteItem `json:"items"`
}

// QuoteItem - позиция сборки: товар и количество.
type QuoteItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Product - товар каталога со свободными характеристиками.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
	Specs    []Spec          `json:"specs"`
}

// Category - категория каталога ("CPU", "Motherboard", ...); по имени выбираются правила проверки.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Spec - характеристика товара (key="Socket", value="LGA1700").
// Ни ключи, ни значения не нормализованы.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LineTotal - стоимость позиции (цена * количество).
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice - итоговая стоимость сборки.
func (q *Quote) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range q.Items {
		total = total.Add(q.Items[i].LineTotal())
	}
	return total
}
