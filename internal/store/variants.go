package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/models"
)

// GetVariantByID retrieves a variant by ID
func (c *Catalog) GetVariantByID(ctx context.Context, id int64) (*models.Variant, error) {
	var variant models.Variant
	err := c.db.GetContext(ctx, &variant, "SELECT * FROM variants WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("variant not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// GetVariantsByProductID retrieves all variants owned by a product
func (c *Catalog) GetVariantsByProductID(ctx context.Context, productID int64) ([]models.Variant, error) {
	var variants []models.Variant
	err := c.db.SelectContext(ctx, &variants,
		"SELECT * FROM variants WHERE product_id = $1 ORDER BY id", productID)
	return variants, err
}

// UpdateVariantStock sets a variant's stock count within a transaction and
// returns the previous count, so the caller can detect a restock from zero.
func (c *Catalog) UpdateVariantStock(ctx context.Context, variantID int64, stock int) (int, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var previous int
	err = tx.GetContext(ctx, &previous,
		"SELECT stock FROM variants WHERE id = $1 FOR UPDATE", variantID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("variant not found: %d", variantID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock variant: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE variants SET stock = $1 WHERE id = $2", stock, variantID)
	if err != nil {
		return 0, fmt.Errorf("failed to update stock: %w", err)
	}

	return previous, tx.Commit()
}
