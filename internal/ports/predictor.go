package ports

import (
	"context"

	"github.com/alejandrodnm/bandgap/internal/domain"
)

// PredictionAPI es el servicio externo que calcula el band gap.
type PredictionAPI interface {
	// Predict envía una fórmula ya recortada. Cualquier fallo (red, non-2xx,
	// payload malformado) se devuelve como *domain.PredictionError.
	Predict(ctx context.Context, formula string) (domain.PredictionResult, error)
}

// MetadataAPI expone los endpoints de solo lectura del servicio.
type MetadataAPI interface {
	ModelInfo(ctx context.Context) (domain.ModelInfo, error)
	Health(ctx context.Context) (domain.Health, error)
	Dataset(ctx context.Context, limit, offset int) (domain.Dataset, error)
}
