package bandgapapi

import (
	"errors"
	"strings"

	"github.com/alejandrodnm/bandgap/internal/domain"
)

var errMissingField = errors.New("missing field")

// mapPrediction valida y convierte la respuesta de /predict.
// formula, predicted_band_gap y confidence_range son obligatorios.
func mapPrediction(r predictResponse) (domain.PredictionResult, error) {
	switch {
	case r.Formula == nil || strings.TrimSpace(*r.Formula) == "":
		return domain.PredictionResult{}, fieldErr("formula")
	case r.PredictedBandGap == nil:
		return domain.PredictionResult{}, fieldErr("predicted_band_gap")
	case r.ConfidenceRange == nil || r.ConfidenceRange.Lower == nil || r.ConfidenceRange.Upper == nil:
		return domain.PredictionResult{}, fieldErr("confidence_range")
	}

	return domain.PredictionResult{
		Formula:          strings.TrimSpace(*r.Formula),
		PredictedBandGap: *r.PredictedBandGap,
		ConfidenceRange: domain.ConfidenceRange{
			Lower: *r.ConfidenceRange.Lower,
			Upper: *r.ConfidenceRange.Upper,
		},
		EfficiencyCategory: r.EfficiencyCategory,
		IsOptimal:          r.IsOptimal,
	}, nil
}

func fieldErr(name string) error {
	return &fieldError{name: name}
}

type fieldError struct{ name string }

func (e *fieldError) Error() string { return "missing field " + e.name }
func (e *fieldError) Unwrap() error { return errMissingField }

// detailMessage extrae el detail de un payload de error, si es un string.
func detailMessage(r errorResponse) string {
	if s, ok := r.Detail.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// mapModelInfo convierte la respuesta de /model_info.
func mapModelInfo(r modelInfoResponse) domain.ModelInfo {
	info := domain.ModelInfo{
		ModelType:    r.ModelType,
		Algorithm:    r.TrainingInfo.Algorithm,
		TargetMetric: r.TrainingInfo.TargetMetric,
		Optimization: r.TrainingInfo.Optimization,
	}
	// JSON decodifica números a float64; "Unknown" queda en 0
	if n, ok := r.FeaturesUsed.(float64); ok {
		info.FeaturesUsed = int(n)
	}
	return info
}

func mapHealth(r healthResponse) domain.Health {
	return domain.Health{
		Status:           r.Status,
		ModelLoaded:      r.ModelLoaded,
		FeaturizerLoaded: r.FeaturizerLoaded,
		DatasetLoaded:    r.DatasetLoaded,
	}
}

// mapDataset convierte la página del dataset. Las filas con nulls conservan
// los campos presentes.
func mapDataset(r datasetResponse) domain.Dataset {
	d := domain.Dataset{
		TotalRecords: r.TotalRecords,
		Columns:      r.Columns,
		Sample:       make([]domain.Material, 0, len(r.SampleData)),
		Stats: domain.DatasetStats{
			TotalMaterials: r.Statistics.TotalMaterials,
			MeanBandGap:    r.Statistics.MeanBandGap,
			MinBandGap:     r.Statistics.MinBandGap,
			MaxBandGap:     r.Statistics.MaxBandGap,
			StdBandGap:     r.Statistics.StdBandGap,
			OptimalCount:   r.Statistics.OptimalCount,
		},
	}
	for _, row := range r.SampleData {
		var m domain.Material
		if row.MaterialID != nil {
			m.MaterialID = *row.MaterialID
		}
		if row.Formula != nil {
			m.Formula = *row.Formula
		}
		if row.BandGap != nil {
			m.BandGap = *row.BandGap
		}
		d.Sample = append(d.Sample, m)
	}
	return d
}
