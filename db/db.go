// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"formbuilder/cliparse"
)

// maxPoolSize bounds the connection pool. Callers block on acquire when the
// pool is exhausted rather than failing fast.
const maxPoolSize = 10

// Open connects to the configured database and bounds the pool. Every
// handler shares the returned *sql.DB; there are no per-request ad hoc
// connections.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var driver string
	dsn := cfg.DatabaseURL
	switch cfg.DatabaseType {
	case "postgres":
		driver = "postgres"
	case "sqlite":
		driver = "sqlite"
		// The schema relies on ON DELETE CASCADE; SQLite leaves foreign
		// keys off unless the connection asks for them.
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.DatabaseType == "sqlite" {
		// SQLite allows a single writer; one pooled connection serializes
		// access instead of surfacing SQLITE_BUSY to handlers.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(maxPoolSize)
	}

	return conn, nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on any error or panic, so a failed multi-step
// write never leaves partial rows behind.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
