package services

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS tasks (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    title       TEXT        NOT NULL,
    description TEXT        NOT NULL DEFAULT '',
    status      TEXT        NOT NULL DEFAULT 'pending',
    priority    TEXT        NOT NULL DEFAULT 'medium',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`,
	`
CREATE INDEX IF NOT EXISTS tasks_status_created_at_idx
    ON tasks (status, created_at DESC)
`,
}

var mysqlSchema = []string{
	`
CREATE TABLE IF NOT EXISTS tasks (
    id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    title       TEXT         NOT NULL,
    description TEXT         NOT NULL,
    status      VARCHAR(255) NOT NULL DEFAULT 'pending',
    priority    VARCHAR(255) NOT NULL DEFAULT 'medium',
    created_at  DATETIME(6)  NOT NULL,
    updated_at  DATETIME(6)  NOT NULL,
    INDEX tasks_status_created_at_idx (status, created_at)
)
`,
}

// EnsurePostgresSchema creates the tasks relation if it does not exist yet.
func EnsurePostgresSchema(ctx context.Context, db PgxQuerier) error {
	for _, stmt := range postgresSchema {
		_, err := db.Exec(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to apply postgres schema: %w", err)
		}
	}
	return nil
}

// EnsureMySQLSchema creates the tasks relation if it does not exist yet.
func EnsureMySQLSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range mysqlSchema {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to apply mysql schema: %w", err)
		}
	}
	return nil
}
