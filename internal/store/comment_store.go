package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pankaj1920/shop/internal/model"
)

// requireProduct returns ErrUnknownProduct unless id is in the catalogue.
func (s *SQLiteStore) requireProduct(ctx context.Context, id int) error {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)", id); err != nil {
		return fmt.Errorf("looking up product %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("product %d: %w", id, ErrUnknownProduct)
	}
	return nil
}

// GetComments retrieves the comments of a product, newest first.
func (s *SQLiteStore) GetComments(ctx context.Context, productID int) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.SelectContext(ctx, &comments, `
		SELECT id, product_id, author, comment, rate, created_at
		FROM comments
		WHERE product_id = ?
		ORDER BY created_at DESC, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying comments for product %d: %w", productID, err)
	}
	return comments, nil
}

// AddComment inserts a comment and returns it with its ID and timestamp
// filled in.
func (s *SQLiteStore) AddComment(ctx context.Context, c model.Comment) (model.Comment, error) {
	c.Comment = strings.TrimSpace(c.Comment)
	if c.Comment == "" {
		return model.Comment{}, fmt.Errorf("comment must not be empty")
	}
	if c.Rate < model.MinRate || c.Rate > model.MaxRate {
		return model.Comment{}, fmt.Errorf("rate %.1f out of range %.0f-%.0f", c.Rate, model.MinRate, model.MaxRate)
	}
	if err := s.requireProduct(ctx, c.ProductID); err != nil {
		return model.Comment{}, err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO comments (id, product_id, author, comment, rate, created_at)
		VALUES (:id, :product_id, :author, :comment, :rate, :created_at)`, c)
	if err != nil {
		return model.Comment{}, fmt.Errorf("creating comment on product %d: %w", c.ProductID, err)
	}
	return c, nil
}
