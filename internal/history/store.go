package history

// store.go: History Store.
//
// Único escritor del slot durable. La lista vive en memoria y se reescribe
// completa en el slot tras cada mutación. Los fallos del slot se loguean como
// *domain.StorageError y se absorben: en el peor caso el usuario ve un
// historial vacío en la próxima carga.

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/ports"
)

// DefaultKey es el nombre del slot donde se guarda el historial.
const DefaultKey = "predictionHistory"

// Store mantiene el historial de predicciones acotado y persistido.
type Store struct {
	slot ports.Slot
	key  string

	mu      sync.Mutex
	current domain.History
}

// NewStore crea un Store sobre el slot dado. Si key está vacío usa DefaultKey.
// No lee el slot: llamar a Load al arrancar.
func NewStore(slot ports.Slot, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{slot: slot, key: key, current: domain.History{}}
}

// Load lee el slot y reemplaza el estado en memoria. Devuelve una lista vacía
// si la key no existe o si el valor no es una lista válida de registros.
func (s *Store) Load(ctx context.Context) domain.History {
	h := s.read(ctx)

	s.mu.Lock()
	s.current = h
	s.mu.Unlock()
	return h.Clone()
}

func (s *Store) read(ctx context.Context) domain.History {
	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ports.ErrSlotEmpty) {
		return domain.History{}
	}
	if err != nil {
		s.absorb(&domain.StorageError{Op: "load", Key: s.key, Err: err})
		return domain.History{}
	}

	h, err := decode(data)
	if err != nil {
		s.absorb(&domain.StorageError{Op: "load", Key: s.key, Err: err})
		return domain.History{}
	}
	if len(h) > domain.HistoryCapacity {
		slog.Debug("stored history over capacity, truncating", "len", len(h))
		h = h[:domain.HistoryCapacity]
	}
	return h
}

// Append devuelve current con record al frente, truncada a la capacidad.
// No persiste nada.
func (s *Store) Append(record domain.PredictionRecord, current domain.History) domain.History {
	return domain.AppendRecord(record, current)
}

// Persist escribe la lista completa en el slot y la adopta como estado en memoria.
// Un fallo del slot se loguea y se ignora.
func (s *Store) Persist(ctx context.Context, list domain.History) {
	if len(list) > domain.HistoryCapacity {
		list = list[:domain.HistoryCapacity]
	}
	list = list.Clone()

	s.mu.Lock()
	s.current = list
	s.mu.Unlock()

	data, err := encode(list)
	if err == nil {
		err = s.slot.Put(ctx, s.key, data)
	}
	if err != nil {
		s.absorb(&domain.StorageError{Op: "persist", Key: s.key, Err: err})
	}
}

// Commit añade record al historial actual y lo persiste. Devuelve la lista nueva.
func (s *Store) Commit(ctx context.Context, record domain.PredictionRecord) domain.History {
	s.mu.Lock()
	next := s.Append(record, s.current)
	s.mu.Unlock()

	s.Persist(ctx, next)
	return next.Clone()
}

// Clear borra la entrada durable y vacía el estado en memoria.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.current = domain.History{}
	s.mu.Unlock()

	if err := s.slot.Delete(ctx, s.key); err != nil {
		s.absorb(&domain.StorageError{Op: "clear", Key: s.key, Err: err})
	}
}

// Current devuelve una copia del historial en memoria.
func (s *Store) Current() domain.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Store) absorb(err *domain.StorageError) {
	slog.Warn("history storage error ignored", "op", err.Op, "key", err.Key, "err", err.Err)
}
