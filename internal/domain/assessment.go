package domain

import "math"

// Assessment resume qué significa un band gap para una celda solar.
type Assessment string

const (
	AssessmentOptimal Assessment = "optimal"
	AssessmentLow     Assessment = "low"
	AssessmentHigh    Assessment = "high"
)

// Assess clasifica una predicción para el texto de análisis.
// Se basa en el flag isOptimal; fuera del rango, < 1.1 eV es "low".
func Assess(bandGap float64, isOptimal bool) Assessment {
	switch {
	case isOptimal:
		return AssessmentOptimal
	case bandGap < optimalLower:
		return AssessmentLow
	default:
		return AssessmentHigh
	}
}

// Message devuelve la explicación legible del assessment.
func (a Assessment) Message() string {
	switch a {
	case AssessmentOptimal:
		return "This material falls within the optimal range for solar cell applications! " +
			"It should exhibit excellent efficiency potential."
	case AssessmentLow:
		return "This material has a low band gap. While it may absorb more light, " +
			"it will produce lower voltage, limiting overall efficiency."
	default:
		return "This material has a higher band gap. It will produce higher voltage " +
			"but may miss portions of the solar spectrum, reducing current output."
	}
}

// ScalePosition devuelve la posición (0–100 %) del marcador en la escala 0–3 eV.
func ScalePosition(bandGap float64) float64 {
	return math.Min(100, bandGap/ScaleMaxBandGap*100)
}
