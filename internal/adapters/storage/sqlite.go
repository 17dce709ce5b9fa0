package storage

// sqlite.go: slot durable sobre SQLite.
//
// Una fila por key en `slots`. Cada Put reemplaza el valor completo (UPSERT),
// nunca escrituras parciales. El History Store usa una sola key.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alejandrodnm/bandgap/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
    key        TEXT PRIMARY KEY,
    value      BLOB     NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// SQLiteSlot implementa ports.Slot usando SQLite (pure Go, sin CGo).
type SQLiteSlot struct {
	db *sql.DB
}

var _ ports.Slot = (*SQLiteSlot)(nil)

// NewSQLiteSlot abre (o crea) la base de datos en la ruta dada y aplica el schema.
func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteSlot: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteSlot: apply schema: %w", err)
	}
	return &SQLiteSlot{db: db}, nil
}

// Get devuelve el valor de la key, o ports.ErrSlotEmpty si no existe.
func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("storage.SQLiteSlot.Get: %w", err)
	}
	return value, nil
}

// Put reemplaza el valor de la key.
func (s *SQLiteSlot) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("storage.SQLiteSlot.Put: %w", err)
	}
	return nil
}

// Delete elimina la key. No falla si no existe.
func (s *SQLiteSlot) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("storage.SQLiteSlot.Delete: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
