package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// notifyChannel canal LISTEN/NOTIFY por el que se avisa qué colección cambió.
const notifyChannel = "document_changes"

// schemaStatements crea las tablas si no existen. Se ejecuta en cada arranque.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT        NOT NULL,
		id         TEXT        NOT NULL,
		data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE OR REPLACE FUNCTION notify_document_change() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'DELETE' THEN
			PERFORM pg_notify('` + notifyChannel + `', OLD.collection);
		ELSE
			PERFORM pg_notify('` + notifyChannel + `', NEW.collection);
		END IF;
		RETURN NULL;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS documents_notify ON documents`,
	`CREATE TRIGGER documents_notify
		AFTER INSERT OR UPDATE OR DELETE ON documents
		FOR EACH ROW EXECUTE FUNCTION notify_document_change()`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT        PRIMARY KEY,
		email         TEXT        NOT NULL UNIQUE,
		password_hash TEXT        NOT NULL,
		name          TEXT        NOT NULL,
		role          TEXT        NOT NULL,
		status        TEXT        NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema aplica schemaStatements dentro de una transacción.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("schema: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("schema: commit: %w", err)
	}
	return nil
}
