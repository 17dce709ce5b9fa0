package bandgapapi

// DTOs raw del servicio de predicción. Solo se usan dentro de este paquete.
// La conversión a domain se hace en mapping.go.

// predictRequest es el body de POST /predict.
type predictRequest struct {
	Formula string `json:"formula"`
}

// predictResponse es la respuesta de POST /predict. Los punteros permiten
// distinguir campos ausentes de valores cero.
type predictResponse struct {
	Formula            *string          `json:"formula"`
	PredictedBandGap   *float64         `json:"predicted_band_gap"`
	ConfidenceRange    *confidenceRange `json:"confidence_range"`
	EfficiencyCategory string           `json:"efficiency_category"`
	IsOptimal          *bool            `json:"is_optimal"`
}

type confidenceRange struct {
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

// errorResponse es el payload opcional de las respuestas non-2xx.
// detail suele ser un string, pero los errores de validación lo envían como lista.
type errorResponse struct {
	Detail any `json:"detail"`
}

// modelInfoResponse es la respuesta de GET /model_info.
// features_used es un entero o "Unknown".
type modelInfoResponse struct {
	ModelType    string       `json:"model_type"`
	FeaturesUsed any          `json:"features_used"`
	TrainingInfo trainingInfo `json:"training_info"`
}

type trainingInfo struct {
	Algorithm    string `json:"algorithm"`
	TargetMetric string `json:"target_metric"`
	Optimization string `json:"optimization"`
}

// healthResponse es la respuesta de GET /health.
type healthResponse struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	FeaturizerLoaded bool   `json:"featurizer_loaded"`
	DatasetLoaded    bool   `json:"dataset_loaded"`
}

// datasetResponse es la respuesta de GET /dataset.
type datasetResponse struct {
	TotalRecords int             `json:"total_records"`
	Columns      []string        `json:"columns"`
	SampleData   []materialRow   `json:"sample_data"`
	Statistics   datasetStatsRaw `json:"statistics"`
}

// materialRow admite nulls en cualquier columna.
type materialRow struct {
	MaterialID *string  `json:"material_id"`
	Formula    *string  `json:"formula"`
	BandGap    *float64 `json:"band_gap"`
}

type datasetStatsRaw struct {
	TotalMaterials int     `json:"total_materials"`
	MeanBandGap    float64 `json:"mean_band_gap"`
	MinBandGap     float64 `json:"min_band_gap"`
	MaxBandGap     float64 `json:"max_band_gap"`
	StdBandGap     float64 `json:"std_band_gap"`
	OptimalCount   int     `json:"optimal_count"`
}
