package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pankaj1920/shop/internal/model"
)

const basketQuery = `
	SELECT b.id, b.product_id, p.title, p.price, b.count
	FROM basket_items b
	INNER JOIN products p ON p.id = b.product_id
	ORDER BY p.title`

// GetBasket retrieves every basket line with its product title and price.
func (s *SQLiteStore) GetBasket(ctx context.Context) ([]model.BasketItem, error) {
	var items []model.BasketItem
	if err := s.db.SelectContext(ctx, &items, basketQuery); err != nil {
		return nil, fmt.Errorf("querying basket: %w", err)
	}
	return items, nil
}

// AddToBasket adds item.Count units of a product, merging with an
// existing line.
func (s *SQLiteStore) AddToBasket(ctx context.Context, item model.BasketItem) error {
	if item.Count <= 0 {
		item.Count = 1
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := s.requireProduct(ctx, item.ProductID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO basket_items (id, product_id, count) VALUES (?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET count = count + excluded.count`,
		item.ID, item.ProductID, item.Count,
	)
	if err != nil {
		return fmt.Errorf("adding product %d to basket: %w", item.ProductID, err)
	}
	return nil
}

// PlaceOrder records an order for the basket plus shipping and clears the
// basket in the same transaction.
func (s *SQLiteStore) PlaceOrder(ctx context.Context, shipping model.ShippingType) (model.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Order{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var items []model.BasketItem
	if err := tx.SelectContext(ctx, &items, basketQuery); err != nil {
		return model.Order{}, fmt.Errorf("querying basket: %w", err)
	}
	if len(items) == 0 {
		return model.Order{}, ErrEmptyBasket
	}

	order := model.Order{
		ID:            uuid.New().String(),
		ShippingID:    shipping.ID,
		ShippingTitle: shipping.Title,
		Total:         model.BasketTotal(items) + shipping.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO orders (id, shipping_id, shipping_title, total, created_at)
		VALUES (:id, :shipping_id, :shipping_title, :total, :created_at)`, order); err != nil {
		return model.Order{}, fmt.Errorf("creating order: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM basket_items"); err != nil {
		return model.Order{}, fmt.Errorf("clearing basket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, fmt.Errorf("committing order: %w", err)
	}
	return order, nil
}
