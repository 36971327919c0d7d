// database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gewnthar/mareas/backend/config"
	_ "github.com/go-sql-driver/mysql" // MySQL/MariaDB driver
	_ "modernc.org/sqlite"             // local and test driver
)

// schema is portable between MySQL and SQLite. Statements run one at a time
// because the MySQL driver rejects multi-statement Exec by default.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS zonas_marea (
		id VARCHAR(128) NOT NULL PRIMARY KEY,
		lat DOUBLE NOT NULL,
		lng DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mareas_diarias (
		zone_id VARCHAR(128) NOT NULL PRIMARY KEY,
		mareas_json MEDIUMTEXT NOT NULL,
		ultima_actualizacion DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_runs (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		zones_total INT NOT NULL DEFAULT 0,
		zones_processed INT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL,
		error_message TEXT
	)`,
}

// InitDB opens the configured database, verifies the connection and ensures the schema.
func InitDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "mareas.db"
		}
		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
		}
		// One connection: ":memory:" databases are per-connection and SQLite serialises writers anyway.
		db.SetMaxOpenConns(1)
	case "mysql", "":
		// DSN: username:password@protocol(address)/dbname?param=value
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
		)
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database: Successfully connected (%s)", cfg.Driver)
	return db, nil
}

// EnsureSchema creates the tables used by the tide stores if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// CloseDB closes the connection pool. Typically called on shutdown.
func CloseDB(db *sql.DB) {
	if db != nil {
		db.Close()
		log.Println("Database connection closed.")
	}
}
