package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(formula string, bg float64) PredictionRecord {
	c := Classify(bg)
	return PredictionRecord{
		Formula:            formula,
		PredictedBandGap:   bg,
		ConfidenceRange:    ConfidenceRange{Lower: bg - 0.2, Upper: bg + 0.2},
		EfficiencyCategory: c.Category.String(),
		IsOptimal:          c.IsOptimal,
	}
}

func TestAppendRecord_PrependsAndCaps(t *testing.T) {
	var h History
	for i := 1; i <= 25; i++ {
		h = AppendRecord(rec(fmt.Sprintf("F%d", i), float64(i)/10), h)
	}

	require.Len(t, h, HistoryCapacity)
	// Los 20 más recientes, el último añadido primero: F25 ... F6
	for i, r := range h {
		assert.Equal(t, fmt.Sprintf("F%d", 25-i), r.Formula)
	}
}

func TestAppendRecord_DoesNotMutateInput(t *testing.T) {
	current := History{rec("A", 1), rec("B", 2)}
	next := AppendRecord(rec("C", 3), current)

	require.Len(t, current, 2)
	assert.Equal(t, "A", current[0].Formula)
	assert.Equal(t, []string{"C", "A", "B"}, formulas(next))
}

func TestAppendRecord_FullInputIsNotModified(t *testing.T) {
	var full History
	for i := 0; i < HistoryCapacity; i++ {
		full = append(full, rec(fmt.Sprintf("X%d", i), 1))
	}
	next := AppendRecord(rec("NEW", 1), full)

	require.Len(t, next, HistoryCapacity)
	assert.Equal(t, "NEW", next[0].Formula)
	assert.Equal(t, "X18", next[HistoryCapacity-1].Formula, "el más antiguo (X19) se descarta")
	assert.Equal(t, "X19", full[HistoryCapacity-1].Formula)
}

func TestHistory_RecentAndLatest(t *testing.T) {
	h := History{rec("A", 1), rec("B", 2), rec("C", 3)}
	assert.Len(t, h.Recent(2), 2)
	assert.Len(t, h.Recent(10), 3)
	assert.Empty(t, h.Recent(-1))

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "A", latest.Formula)

	_, ok = History{}.Latest()
	assert.False(t, ok)
}

func formulas(h History) []string {
	out := make([]string, len(h))
	for i, r := range h {
		out[i] = r.Formula
	}
	return out
}

func TestPredictionResult_Record_KeepsAPIFields(t *testing.T) {
	no := false
	res := PredictionResult{
		Formula:            "CsPbI3",
		PredictedBandGap:   1.25,
		EfficiencyCategory: "Optimal for Solar Cells",
		IsOptimal:          &no,
	}
	r := res.Record("id-1", time.Unix(100, 0))

	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, "Optimal for Solar Cells", r.EfficiencyCategory)
	assert.False(t, r.IsOptimal, "no se re-deriva si la API lo envía")
}

func TestPredictionResult_Record_FallsBackToClassifier(t *testing.T) {
	r := PredictionResult{Formula: "MAPbCl3", PredictedBandGap: 2.8}.Record("", time.Time{})
	assert.Equal(t, "High Gap", r.EfficiencyCategory)
	assert.False(t, r.IsOptimal)

	r = PredictionResult{Formula: "CsPbI3", PredictedBandGap: 1.25}.Record("", time.Time{})
	assert.Equal(t, "Optimal", r.EfficiencyCategory)
	assert.True(t, r.IsOptimal)
}
