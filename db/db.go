package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"   // Import postgres driver
	_ "modernc.org/sqlite" // Import sqlite driver (registered as "sqlite")
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, ping(db, timeout)
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string, timeout time.Duration) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite handle: %w", err)
	}

	// SQLite allows a single writer; one connection keeps transactions from hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return db, ping(db, timeout)
}

func ping(db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database within %v: %w (close: %v)", timeout, err, closeErr)
		}
		return fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}
	return nil
}

// EnsureSchema creates the documents table and its owner index if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	bodyType := "TEXT"
	if driver == DriverPostgres {
		bodyType = "JSONB"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			body       %s NOT NULL,
			PRIMARY KEY (collection, id)
		)`, bodyType),
		`CREATE INDEX IF NOT EXISTS documents_owner_idx ON documents (collection, owner_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
