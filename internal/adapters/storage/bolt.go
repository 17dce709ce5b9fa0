package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alejandrodnm/bandgap/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var slotBucket = []byte("slots")

// BoltSlot implementa ports.Slot sobre un archivo bbolt con un solo bucket.
type BoltSlot struct {
	db *bolt.DB
}

var _ ports.Slot = (*BoltSlot)(nil)

// NewBoltSlot abre (o crea) el archivo bbolt en path.
func NewBoltSlot(path string) (*BoltSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewBoltSlot: mkdir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage.NewBoltSlot: open %q: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(slotBucket)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage.NewBoltSlot: create bucket: %w", err)
	}
	return &BoltSlot{db: db}, nil
}

// Get devuelve una copia del valor, o ports.ErrSlotEmpty si no existe.
func (s *BoltSlot) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(slotBucket).Get([]byte(key))
		if v == nil {
			return ports.ErrSlotEmpty
		}
		// v solo es válido dentro de la transacción
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put reemplaza el valor de la key.
func (s *BoltSlot) Put(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage.BoltSlot.Put: %w", err)
	}
	return nil
}

// Delete elimina la key. No falla si no existe.
func (s *BoltSlot) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage.BoltSlot.Delete: %w", err)
	}
	return nil
}

// Close libera el lock del archivo.
func (s *BoltSlot) Close() error {
	return s.db.Close()
}
