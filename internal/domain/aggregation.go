package domain

// aggregation.go: proyecciones de solo lectura sobre el historial.
//
// Se recalculan en cada lectura; no hay estado derivado en caché.

const trendLabelMax = 10

// TrendPoint es un punto de la serie de tendencia.
type TrendPoint struct {
	Index   int    // 1 = más reciente
	Label   string // fórmula truncada a 10 caracteres + "..."
	BandGap float64
}

// TrendSeries devuelve un punto por registro, en el mismo orden del historial.
func TrendSeries(h History) []TrendPoint {
	points := make([]TrendPoint, 0, len(h))
	for i, r := range h {
		points = append(points, TrendPoint{
			Index:   i + 1,
			Label:   TrendLabel(r.Formula),
			BandGap: r.PredictedBandGap,
		})
	}
	return points
}

// TrendLabel trunca una fórmula a 10 caracteres añadiendo "..." si es más larga.
func TrendLabel(formula string) string {
	runes := []rune(formula)
	if len(runes) <= trendLabelMax {
		return formula
	}
	return string(runes[:trendLabelMax]) + "..."
}

// Bucket es uno de los cuatro grupos del resumen por categoría.
type Bucket string

const (
	BucketOptimal  Bucket = "Optimal"
	BucketLowGap   Bucket = "Low Gap"
	BucketModerate Bucket = "Moderate"
	BucketHighGap  Bucket = "High Gap"
)

// Buckets es el orden fijo de presentación.
var Buckets = []Bucket{BucketOptimal, BucketLowGap, BucketModerate, BucketHighGap}

// Label devuelve la etiqueta con el rango en eV para gráficos.
func (b Bucket) Label() string {
	switch b {
	case BucketOptimal:
		return "Optimal (1.1-1.4 eV)"
	case BucketLowGap:
		return "Low Gap (<1.0 eV)"
	case BucketModerate:
		return "Moderate (1.4-2.0 eV)"
	case BucketHighGap:
		return "High Gap (>2.0 eV)"
	}
	return string(b)
}

// CategoryCounts cuenta registros por bucket usando los umbrales crudos sobre
// PredictedBandGap e IsOptimal, ignorando la categoría almacenada.
//
//	Optimal:  IsOptimal
//	Low Gap:  bandGap < 1.0
//	Moderate: 1.4 ≤ bandGap ≤ 2.0
//	High Gap: bandGap > 2.0
//
// Los buckets se evalúan por separado: un registro en 1.4 eV óptimo cuenta en
// Optimal y en Moderate, y uno en [1.0, 1.1) no cuenta en ninguno.
func CategoryCounts(h History) map[Bucket]int {
	counts := make(map[Bucket]int, len(Buckets))
	for _, b := range Buckets {
		counts[b] = 0
	}
	for _, r := range h {
		bg := r.PredictedBandGap
		if r.IsOptimal {
			counts[BucketOptimal]++
		}
		if bg < lowGapUpper {
			counts[BucketLowGap]++
		}
		if bg >= optimalUpper && bg <= moderateUpper {
			counts[BucketModerate]++
		}
		if bg > moderateUpper {
			counts[BucketHighGap]++
		}
	}
	return counts
}
