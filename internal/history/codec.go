package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alejandrodnm/bandgap/internal/domain"
)

// storedRecord es la forma serializada de un registro. Usa los mismos nombres
// de campo que la respuesta de /predict, más id y created_at.
type storedRecord struct {
	ID                 string      `json:"id,omitempty"`
	Formula            string      `json:"formula"`
	PredictedBandGap   *float64    `json:"predicted_band_gap"`
	ConfidenceRange    storedRange `json:"confidence_range"`
	EfficiencyCategory string      `json:"efficiency_category"`
	IsOptimal          bool        `json:"is_optimal"`
	CreatedAt          *time.Time  `json:"created_at,omitempty"`
}

type storedRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

var errMalformed = errors.New("malformed history record")

// encode serializa la lista completa.
func encode(h domain.History) ([]byte, error) {
	out := make([]storedRecord, 0, len(h))
	for _, r := range h {
		bg := r.PredictedBandGap
		sr := storedRecord{
			ID:                 r.ID,
			Formula:            r.Formula,
			PredictedBandGap:   &bg,
			ConfidenceRange:    storedRange{Lower: r.ConfidenceRange.Lower, Upper: r.ConfidenceRange.Upper},
			EfficiencyCategory: r.EfficiencyCategory,
			IsOptimal:          r.IsOptimal,
		}
		if !r.CreatedAt.IsZero() {
			t := r.CreatedAt.UTC()
			sr.CreatedAt = &t
		}
		out = append(out, sr)
	}
	return json.Marshal(out)
}

// decode parsea una lista serializada. Cualquier registro sin fórmula o sin
// band gap invalida la lista entera.
func decode(data []byte) (domain.History, error) {
	var raw []storedRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	h := make(domain.History, 0, len(raw))
	for i, sr := range raw {
		if sr.Formula == "" || sr.PredictedBandGap == nil {
			return nil, fmt.Errorf("decode history: entry %d: %w", i, errMalformed)
		}
		r := domain.PredictionRecord{
			ID:                 sr.ID,
			Formula:            sr.Formula,
			PredictedBandGap:   *sr.PredictedBandGap,
			ConfidenceRange:    domain.ConfidenceRange{Lower: sr.ConfidenceRange.Lower, Upper: sr.ConfidenceRange.Upper},
			EfficiencyCategory: sr.EfficiencyCategory,
			IsOptimal:          sr.IsOptimal,
		}
		if sr.CreatedAt != nil {
			r.CreatedAt = sr.CreatedAt.UTC()
		}
		h = append(h, r)
	}
	return h, nil
}
