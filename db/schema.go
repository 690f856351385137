/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	// Register pgx with database/sql for goose migrations.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationsDir is the goose directory inside the embedded filesystem and,
// relative to the repository root, the source directory for new migrations.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// OpenMigrations opens a database/sql connection for goose and points goose
// at the embedded visit_records migrations. The caller closes the handle.
func OpenMigrations(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, ErrDatabaseURLEnvVarNotSet
	}

	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		closeMigrations(sqlDB)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		closeMigrations(sqlDB)
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	return sqlDB, nil
}

func closeMigrations(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", "error", err)
	}
}

// SyncSchema applies every pending migration.
func SyncSchema(ctx context.Context, databaseURL string) error {
	sqlDB, err := OpenMigrations(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrations(sqlDB)

	if err := goose.UpContext(ctx, sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
