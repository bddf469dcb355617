package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Default page size for listings.
const defaultLimit = 10

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL UNIQUE,
	price REAL NOT NULL
);
`

// Persists products in SQLite.
type Store struct {
	db *sqlx.DB
}

// Opens the product database at dsn and ensures the schema exists.
func OpenStore(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open product database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create products table: %w", err)
	}
	return &Store{db: db}, nil
}

// Closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Returns a page of products ordered by name.
//
// A non-positive limit falls back to the default page size.
func (s *Store) List(ctx context.Context, skip, limit int) ([]Product, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	products := []Product{}
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, price FROM products ORDER BY name LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Looks up a product by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p,
		`SELECT id, name, price FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Adds a product to the catalog.
//
// Names are unique; inserting a duplicate reports ErrDuplicate.
func (s *Store) Insert(ctx context.Context, p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, price) VALUES (?, ?, ?)`, p.ID, p.Name, p.Price)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Replaces the named fields of an existing product.
func (s *Store) Update(ctx context.Context, p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ? WHERE id = ?`, p.Name, p.Price, p.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reports whether err is a violation of the products name UNIQUE constraint.
//
// The constraint is the single authority on name uniqueness, so inserts and
// renames share one duplicate-detection path regardless of interleaving.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Removes a product from the catalog.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
