package domain

import "time"

// ConfidenceRange es el intervalo (lower, upper) en eV devuelto por el servicio.
// No se valida lower <= upper: se confía en la API.
type ConfidenceRange struct {
	Lower float64
	Upper float64
}

// PredictionRecord es una predicción completada. Es un valor inmutable:
// el historial cambia de forma estructural (prepend/remove), nunca editando campos.
type PredictionRecord struct {
	ID                 string // uuid asignado al confirmar en el historial
	Formula            string // fórmula química, ya recortada
	PredictedBandGap   float64
	ConfidenceRange    ConfidenceRange
	EfficiencyCategory string // etiqueta de la API, o la del Classifier si la API no la envía
	IsOptimal          bool   // 1.1 <= PredictedBandGap <= 1.4
	CreatedAt          time.Time
}

// PredictionResult es la respuesta del servicio, antes de confirmarla en el historial.
type PredictionResult struct {
	Formula            string
	PredictedBandGap   float64
	ConfidenceRange    ConfidenceRange
	EfficiencyCategory string // "" si la API no lo envió
	IsOptimal          *bool  // nil si la API no lo envió
}

// Record convierte el resultado en un PredictionRecord. Los campos que la API
// envía se respetan; los ausentes se completan con Classify.
func (r PredictionResult) Record(id string, createdAt time.Time) PredictionRecord {
	c := Classify(r.PredictedBandGap)
	rec := PredictionRecord{
		ID:                 id,
		Formula:            r.Formula,
		PredictedBandGap:   r.PredictedBandGap,
		ConfidenceRange:    r.ConfidenceRange,
		EfficiencyCategory: r.EfficiencyCategory,
		IsOptimal:          c.IsOptimal,
		CreatedAt:          createdAt,
	}
	if rec.EfficiencyCategory == "" {
		rec.EfficiencyCategory = c.Category.String()
	}
	if r.IsOptimal != nil {
		rec.IsOptimal = *r.IsOptimal
	}
	return rec
}

// ModelInfo es la metadata del modelo expuesta por GET /model_info.
type ModelInfo struct {
	ModelType    string
	FeaturesUsed int
	Algorithm    string
	TargetMetric string
	Optimization string
}

// Health es el estado del servicio de predicción (GET /health).
type Health struct {
	Status           string
	ModelLoaded      bool
	FeaturizerLoaded bool
	DatasetLoaded    bool
}

// Healthy devuelve true si el servicio puede atender predicciones.
func (h Health) Healthy() bool {
	return h.Status == "healthy" && h.ModelLoaded && h.FeaturizerLoaded
}

// Material es una fila de muestra del dataset de entrenamiento.
type Material struct {
	MaterialID string
	Formula    string
	BandGap    float64
}

// DatasetStats resume el dataset de semiconductores (band gap > 0.1 eV).
type DatasetStats struct {
	TotalMaterials int
	MeanBandGap    float64
	MinBandGap     float64
	MaxBandGap     float64
	StdBandGap     float64
	OptimalCount   int
}

// Dataset es una página del dataset con sus estadísticas globales.
type Dataset struct {
	TotalRecords int
	Columns      []string
	Sample       []Material
	Stats        DatasetStats
}

// OptimalShare devuelve el porcentaje de materiales dentro del rango óptimo.
func (d Dataset) OptimalShare() float64 {
	if d.Stats.TotalMaterials <= 0 {
		return 0
	}
	return float64(d.Stats.OptimalCount) / float64(d.Stats.TotalMaterials) * 100
}

// ExampleFormulas son las fórmulas de ejemplo ofrecidas al usuario.
var ExampleFormulas = []string{"CsPbI3", "CH3NH3PbBr3", "MAPbCl3"}
