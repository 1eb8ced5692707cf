// Package pgtest starts a throwaway PostgreSQL container with the migrated
// schema and seeds the tables owned by other services. It is imported by
// integration suites only.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/adapters/out/postgres/migrations"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container plus a gorm handle to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = migrations.Up(dsn); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(migrations.Tables, ", ") + " RESTART IDENTITY CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// InsertUser creates a user row.
func (d *Database) InsertUser(ctx context.Context, id uuid.UUID) error {
	return d.DB.WithContext(ctx).Exec(
		"INSERT INTO users (id, email, name) VALUES (?, ?, ?)",
		id, id.String()+"@example.com", "user "+id.String()[:8],
	).Error
}

// InsertProduct creates a product with the given price, e.g. "10.00".
func (d *Database) InsertProduct(ctx context.Context, id uuid.UUID, title, author, price string) error {
	return d.DB.WithContext(ctx).Exec(
		"INSERT INTO products (id, title, author, price, stock, photo_base64) VALUES (?, ?, ?, ?::numeric, 100, ?)",
		id, title, author, price, "cGhvdG8=",
	).Error
}

// SetProductPrice changes a live product price.
func (d *Database) SetProductPrice(ctx context.Context, id uuid.UUID, price string) error {
	return d.DB.WithContext(ctx).Exec("UPDATE products SET price = ?::numeric WHERE id = ?", price, id).Error
}

// AddToCart inserts a cart row. Rows added later sort later in the snapshot.
func (d *Database) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return d.DB.WithContext(ctx).Exec(
		"INSERT INTO cart_items (user_id, product_id, quantity, created_at) VALUES (?, ?, ?, clock_timestamp())",
		userID, productID, quantity,
	).Error
}

// Count returns the number of rows in table matching where.
func (d *Database) Count(ctx context.Context, table, where string, args ...any) int64 {
	var n int64
	q := d.DB.WithContext(ctx).Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	q.Count(&n)
	return n
}
