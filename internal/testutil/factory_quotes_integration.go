//go:build integration

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// PartSeed - товар позиции сметы; Specs задаются парами ключ/значение.
type PartSeed struct {
	Category string
	Name     string
	Price    string
	Quantity int
	Specs    []string
}

// Part - короткий конструктор PartSeed с ценой 100.00 и количеством 1.
func Part(category, name string, specs ...string) PartSeed {
	return PartSeed{Category: category, Name: name, Price: "100.00", Quantity: 1, Specs: specs}
}

// SeedQuote - создаёт смету со всеми товарами, категориями и характеристиками
// в одной транзакции. Возвращает ID сметы.
func SeedQuote(ctx context.Context, pool *pgxpool.Pool, title string, parts ...PartSeed) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var quoteID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO quotes (title, description) VALUES ($1, $2) RETURNING id`,
		title, "seeded "+UniqSuffix(),
	).Scan(&quoteID); err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	for _, p := range parts {
		productID, err := seedProduct(ctx, tx, p)
		if err != nil {
			return 0, err
		}
		qty := p.Quantity
		if qty <= 0 {
			qty = 1
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO quote_items (quote_id, product_id, quantity) VALUES ($1, $2, $3)`,
			quoteID, productID, qty,
		); err != nil {
			return 0, fmt.Errorf("insert quote item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return quoteID, nil
}

func seedProduct(ctx context.Context, tx pgx.Tx, p PartSeed) (int64, error) {
	var categoryID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, p.Category).Scan(&categoryID); err != nil {
		return 0, fmt.Errorf("upsert category: %w", err)
	}

	price := p.Price
	if price == "" {
		price = "0"
	}
	var productID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO products (name, price, category_id) VALUES ($1, $2::numeric, $3) RETURNING id`,
		p.Name, price, categoryID,
	).Scan(&productID); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	for i := 0; i+1 < len(p.Specs); i += 2 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_specs (product_id, key, value) VALUES ($1, $2, $3)`,
			productID, p.Specs[i], p.Specs[i+1],
		); err != nil {
			return 0, fmt.Errorf("insert product spec: %w", err)
		}
	}
	return productID, nil
}

// TouchQuote - сдвигает updated_at сметы (порядок для LastN).
func TouchQuote(ctx context.Context, pool *pgxpool.Pool, quoteID int64, offsetSeconds int) error {
	_, err := pool.Exec(ctx,
		`UPDATE quotes SET updated_at = now() + make_interval(secs => $2) WHERE id = $1`,
		quoteID, offsetSeconds,
	)
	return err
}
