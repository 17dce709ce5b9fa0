package storage

import (
	"context"
	"sync"

	"github.com/alejandrodnm/bandgap/internal/ports"
)

// MemorySlot implementa ports.Slot en memoria. Útil para tests y --dry-run.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ ports.Slot = (*MemorySlot)(nil)

// NewMemorySlot crea un slot vacío.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (s *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ports.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemorySlot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemorySlot) Close() error { return nil }
