package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Catalog serves product and variant reference data from Postgres. The cart
// and wishlist only ever read from it; the single write path is the admin
// restock operation in variants.go.
type Catalog struct {
	db *sqlx.DB
}

// NewCatalog connects to the catalog database.
func NewCatalog(databaseURL string) (*Catalog, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	return c.db.Close()
}

// GetProductByID retrieves a product by ID
func (c *Catalog) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := c.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (c *Catalog) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = c.db.Rebind(query)

	var products []models.Product
	err = c.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// ListProducts retrieves a page of products and the total count.
func (c *Catalog) ListProducts(ctx context.Context, page, perPage int) ([]models.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var total int
	if err := c.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := c.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY id LIMIT $1 OFFSET $2",
		perPage, (page-1)*perPage)
	return products, total, err
}
