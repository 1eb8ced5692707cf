// Package migrations applies the embedded SQL schema with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
)

//go:embed sql/*.sql
var files embed.FS

// Tables lists every table created by the schema, children first, so it can be
// used for TRUNCATE in tests.
var Tables = []string{"outbox", "deliveries", "order_items", "orders", "cart_items", "products", "users"}

// Up applies all pending migrations. dsn may be a URL or a key=value string.
func Up(dsn string) error {
	m, closeDB, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeDB()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down reverts every migration.
func Down(dsn string) error {
	m, closeDB, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeDB()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	return nil
}

func newMigrate(dsn string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration connection: %w", err)
	}
	closeDB := func() { _ = db.Close() }

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create migration driver: %w", err)
	}

	src, err := iofs.New(files, "sql")
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, closeDB, nil
}
