package ports

import "github.com/alejandrodnm/bandgap/internal/domain"

// Presenter muestra al usuario el estado del dashboard.
type Presenter interface {
	ShowPrediction(record domain.PredictionRecord)
	ShowHistory(history domain.History)
	ShowError(msg string)
}
