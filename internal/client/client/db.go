package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/countrytap/internal/client/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Driver names registered by the imported database/sql drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", migrations.SQLiteDir, nil
	case DriverPostgres:
		return "postgres", migrations.PostgresDir, nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// RunMigrations applies the embedded migrations for driver. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, dir, err := migrationSource(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dir)
}

// InitDatabase opens dsn with driver and brings the schema up to date.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY on concurrent updates
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}
