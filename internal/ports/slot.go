package ports

import (
	"context"
	"errors"
)

// ErrSlotEmpty indica que la key no existe en el slot.
var ErrSlotEmpty = errors.New("slot empty")

// Slot es un almacenamiento durable clave→bytes. Cada Put reemplaza el valor completo.
type Slot interface {
	// Get devuelve ErrSlotEmpty si la key no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete no falla si la key no existe.
	Delete(ctx context.Context, key string) error
	Close() error
}
