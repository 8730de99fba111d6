package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Проверка, что QuoteRepository удовлетворяет интерфейсу QuoteRepository.
var _ ports.QuoteRepository = (*QuoteRepository)(nil)

// QuoteRepository - чтение смет из Postgres (pgxpool).
// Смета собирается из quotes, quote_items, products, categories и product_specs.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository - конструктор QuoteRepository.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository { return &QuoteRepository{pool: pool} }

const selectQuote = `
	SELECT id, user_id, title, COALESCE(description, ''), COALESCE(share_uuid::text, ''),
		view_count, created_at, updated_at
	FROM quotes`

// GetByID - смета целиком. Если не нашли, возвращает (nil, nil).
func (r *QuoteRepository) GetByID(ctx context.Context, quoteID int64) (*domain.Quote, error) {
	quote, err := scanQuote(r.pool.QueryRow(ctx, selectQuote+` WHERE id = $1`, quoteID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select quote: %w", err)
	}

	itemsByQuote, err := r.loadItems(ctx, []int64{quoteID})
	if err != nil {
		return nil, err
	}
	quote.Items = itemsByQuote[quoteID]
	return quote, nil
}

// LastN - последние N изменённых смет (для прогрева кэша).
// Позиции и характеристики дочитываются пачкой по всем ID страницы.
func (r *QuoteRepository) LastN(ctx context.Context, n int) ([]*domain.Quote, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, selectQuote+`
		ORDER BY updated_at DESC, id DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select last quotes: %w", err)
	}

	var (
		quotes []*domain.Quote
		ids    []int64
	)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, quote)
		ids = append(ids, quote.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("last quotes rows: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return quotes, nil
	}

	itemsByQuote, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, quote := range quotes {
		quote.Items = itemsByQuote[quote.ID]
	}
	return quotes, nil
}

// QuoteIDsByProduct - ID смет, в которых есть товар (по возрастанию, без повторов).
func (r *QuoteRepository) QuoteIDsByProduct(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT quote_id
		FROM quote_items
		WHERE product_id = $1
		ORDER BY quote_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("select quotes by product: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan quotes by product: %w", err)
	}
	return ids, nil
}

// loadItems - позиции смет с товарами и категориями (по id позиции),
// затем характеристики всех товаров одним запросом (по id характеристики).
func (r *QuoteRepository) loadItems(ctx context.Context, quoteIDs []int64) (map[int64][]domain.QuoteItem, error) {
	iRows, err := r.pool.Query(ctx, `
		SELECT
			qi.quote_id, qi.id, qi.product_id, qi.quantity,
			p.name, p.price::text, c.id, c.name
		FROM quote_items qi
		JOIN products p ON p.id = qi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE qi.quote_id = ANY($1::bigint[])
		ORDER BY qi.quote_id, qi.id
	`, quoteIDs)
	if err != nil {
		return nil, fmt.Errorf("select quote items: %w", err)
	}

	itemsByQuote := make(map[int64][]domain.QuoteItem, len(quoteIDs))
	var productIDs []int64
	seen := make(map[int64]struct{})
	for iRows.Next() {
		var (
			quoteID int64
			price   string
			item    domain.QuoteItem
		)
		if err := iRows.Scan(
			&quoteID, &item.ID, &item.ProductID, &item.Quantity,
			&item.Product.Name, &price, &item.Product.Category.ID, &item.Product.Category.Name,
		); err != nil {
			iRows.Close()
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		item.Product.ID = item.ProductID
		if item.Product.Price, err = decimal.NewFromString(price); err != nil {
			iRows.Close()
			return nil, fmt.Errorf("parse price product_id=%d: %w", item.ProductID, err)
		}
		itemsByQuote[quoteID] = append(itemsByQuote[quoteID], item)
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}
	}
	if err := iRows.Err(); err != nil {
		iRows.Close()
		return nil, fmt.Errorf("quote items rows: %w", err)
	}
	iRows.Close()

	if len(productIDs) == 0 {
		return itemsByQuote, nil
	}

	specsByProduct, err := r.loadSpecs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, items := range itemsByQuote {
		for i := range items {
			items[i].Product.Specs = specsByProduct[items[i].ProductID]
		}
	}
	return itemsByQuote, nil
}

func (r *QuoteRepository) loadSpecs(ctx context.Context, productIDs []int64) (map[int64][]domain.Spec, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, key, value
		FROM product_specs
		WHERE product_id = ANY($1::bigint[])
		ORDER BY product_id, id
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("select product specs: %w", err)
	}
	defer rows.Close()

	specs := make(map[int64][]domain.Spec, len(productIDs))
	for rows.Next() {
		var (
			productID int64
			spec      domain.Spec
		)
		if err := rows.Scan(&productID, &spec.Key, &spec.Value); err != nil {
			return nil, fmt.Errorf("scan product spec: %w", err)
		}
		specs[productID] = append(specs[productID], spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product specs rows: %w", err)
	}
	return specs, nil
}

func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var q domain.Quote
	if err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &q.Description, &q.ShareUUID,
		&q.ViewCount, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}
