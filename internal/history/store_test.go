package history_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alejandrodnm/bandgap/internal/adapters/storage"
	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/history"
	"github.com/alejandrodnm/bandgap/internal/ports"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

// brokenSlot falla en todas las operaciones (p.ej. cuota excedida).
type brokenSlot struct{ err error }

func (b *brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b *brokenSlot) Put(context.Context, string, []byte) error   { return b.err }
func (b *brokenSlot) Delete(context.Context, string) error        { return b.err }
func (b *brokenSlot) Close() error                                { return nil }

// --- helpers ---

func makeRecord(formula string, bg float64) domain.PredictionRecord {
	c := domain.Classify(bg)
	return domain.PredictionRecord{
		ID:                 "id-" + formula,
		Formula:            formula,
		PredictedBandGap:   bg,
		ConfidenceRange:    domain.ConfidenceRange{Lower: bg - 0.2, Upper: bg + 0.2},
		EfficiencyCategory: c.Category.String(),
		IsOptimal:          c.IsOptimal,
		CreatedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newStore(t *testing.T) (*history.Store, ports.Slot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	return history.NewStore(slot, ""), slot
}

// --- tests ---

func TestStore_Load_EmptyWhenAbsent(t *testing.T) {
	s, _ := newStore(t)
	h := s.Load(context.Background())
	assert.NotNil(t, h)
	assert.Empty(t, h)
}

func TestStore_Load_EmptyWhenUnparsable(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{{`,
		"object":          `{"formula":"CsPbI3"}`,
		"missing formula": `[{"predicted_band_gap":1.2}]`,
		"missing gap":     `[{"formula":"CsPbI3"}]`,
		"wrong type":      `[{"formula":"CsPbI3","predicted_band_gap":"1.2"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			s, slot := newStore(t)
			require.NoError(t, slot.Put(context.Background(), history.DefaultKey, []byte(raw)))

			h := s.Load(context.Background())
			assert.Empty(t, h)
			assert.Empty(t, s.Current())
		})
	}
}

func TestStore_Load_AcceptsLegacyEntries(t *testing.T) {
	// Entradas sin id/created_at, tal como las guardaba el dashboard web
	raw := `[{"formula":"CsPbI3","predicted_band_gap":1.25,"is_optimal":true,
		"efficiency_category":"Optimal for Solar Cells","confidence_range":{"lower":1.05,"upper":1.45}}]`
	s, slot := newStore(t)
	require.NoError(t, slot.Put(context.Background(), history.DefaultKey, []byte(raw)))

	h := s.Load(context.Background())
	require.Len(t, h, 1)
	assert.Equal(t, "CsPbI3", h[0].Formula)
	assert.True(t, h[0].IsOptimal)
	assert.InDelta(t, 1.45, h[0].ConfidenceRange.Upper, 1e-9)
	assert.True(t, h[0].CreatedAt.IsZero())
}

func TestStore_Load_SlotFailureIsAbsorbed(t *testing.T) {
	s := history.NewStore(&brokenSlot{err: errors.New("disk gone")}, "")
	assert.Empty(t, s.Load(context.Background()))
}

func TestStore_Append25_KeepsLast20(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		s.Commit(ctx, makeRecord(fmt.Sprintf("F%02d", i), 1.0))
	}

	h := s.Load(ctx)
	require.Len(t, h, 20)
	for i, r := range h {
		assert.Equal(t, fmt.Sprintf("F%02d", 25-i), r.Formula)
	}
}

func TestStore_Append_IsPure(t *testing.T) {
	s, slot := newStore(t)
	current := domain.History{makeRecord("A", 1.2)}

	next := s.Append(makeRecord("B", 2.5), current)
	assert.Len(t, next, 2)
	assert.Len(t, current, 1)

	_, err := slot.Get(context.Background(), history.DefaultKey)
	assert.ErrorIs(t, err, ports.ErrSlotEmpty, "Append no persiste")
	assert.Empty(t, s.Current())
}

func TestStore_ClearThenLoad(t *testing.T) {
	s, slot := newStore(t)
	ctx := context.Background()
	s.Commit(ctx, makeRecord("CsPbI3", 1.25))

	s.Clear(ctx)
	assert.Empty(t, s.Current())
	assert.Empty(t, s.Load(ctx))

	_, err := slot.Get(ctx, history.DefaultKey)
	assert.ErrorIs(t, err, ports.ErrSlotEmpty)
}

func TestStore_RoundTrip(t *testing.T) {
	s, slot := newStore(t)
	ctx := context.Background()

	var list domain.History
	for i := 0; i < 20; i++ {
		list = append(list, makeRecord(fmt.Sprintf("M%d", i), 0.37*float64(i)))
	}
	s.Persist(ctx, list)

	reloaded := history.NewStore(slot, "").Load(ctx)
	if diff := cmp.Diff(list, reloaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_RoundTrip_SQLite(t *testing.T) {
	slot, err := storage.NewSQLiteSlot(":memory:")
	require.NoError(t, err)
	defer slot.Close()
	ctx := context.Background()

	list := domain.History{makeRecord("MAPbCl3", 2.8), makeRecord("CsPbI3", 1.25)}
	history.NewStore(slot, "").Persist(ctx, list)

	reloaded := history.NewStore(slot, "").Load(ctx)
	if diff := cmp.Diff(list, reloaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PersistFailureIsAbsorbed(t *testing.T) {
	s := history.NewStore(&brokenSlot{err: errors.New("quota exceeded")}, "")
	ctx := context.Background()

	assert.NotPanics(t, func() {
		s.Commit(ctx, makeRecord("CsPbI3", 1.25))
		s.Clear(ctx)
	})
	assert.Empty(t, s.Current())
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	s := history.NewStore(&brokenSlot{err: errors.New("quota exceeded")}, "")
	next := s.Commit(context.Background(), makeRecord("CsPbI3", 1.25))

	require.Len(t, next, 1)
	assert.Len(t, s.Current(), 1)
}

func TestStore_Load_TruncatesOverCapacity(t *testing.T) {
	s, slot := newStore(t)
	ctx := context.Background()

	var big domain.History
	for i := 0; i < 30; i++ {
		big = append(big, makeRecord(fmt.Sprintf("X%d", i), 1.3))
	}
	// Escribir directamente con otro store sin el límite de Persist
	other := history.NewStore(slot, "")
	other.Persist(ctx, big[:20])
	raw, err := slot.Get(ctx, history.DefaultKey)
	require.NoError(t, err)
	// Duplicar la lista a mano para superar la capacidad
	doubled := append(append([]byte{}, raw[:len(raw)-1]...), ',')
	doubled = append(doubled, raw[1:]...)
	require.NoError(t, slot.Put(ctx, history.DefaultKey, doubled))

	h := s.Load(ctx)
	assert.Len(t, h, domain.HistoryCapacity)
	assert.Equal(t, "X0", h[0].Formula)
}

func TestStore_CustomKey(t *testing.T) {
	slot := storage.NewMemorySlot()
	ctx := context.Background()
	history.NewStore(slot, "custom").Commit(ctx, makeRecord("A", 1.2))

	assert.Empty(t, history.NewStore(slot, "").Load(ctx))
	assert.Len(t, history.NewStore(slot, "custom").Load(ctx), 1)
}
