package domain

// Category es la etiqueta de eficiencia que asigna el Classifier.
type Category string

const (
	CategoryMetal    Category = "Metal"
	CategoryLowGap   Category = "Low Gap"
	CategoryOptimal  Category = "Optimal"
	CategoryModerate Category = "Moderate"
	CategoryHighGap  Category = "High Gap"
)

// Límites en eV. La fila "Optimal" de la tabla empieza en 1.0, pero el flag
// isOptimal usa el rango más estrecho [1.1, 1.4]. Ambos umbrales conviven.
const (
	metalUpper      = 0.1
	lowGapUpper     = 1.0
	optimalLower    = 1.1
	optimalUpper    = 1.4
	moderateUpper   = 2.0
	ScaleMaxBandGap = 3.0
)

// Classification es el resultado de Classify.
type Classification struct {
	Category  Category
	IsOptimal bool
}

// Classify asigna categoría y flag óptimo a un band gap. Función total:
// NaN y +Inf caen en "High Gap", -Inf en "Metal".
//
//	bandGap < 0.1        → Metal
//	0.1 ≤ bandGap < 1.0  → Low Gap
//	1.0 ≤ bandGap ≤ 1.4  → Optimal
//	1.4 < bandGap ≤ 2.0  → Moderate
//	bandGap > 2.0        → High Gap
func Classify(bandGap float64) Classification {
	c := Classification{IsOptimal: IsOptimal(bandGap)}
	switch {
	case bandGap < metalUpper:
		c.Category = CategoryMetal
	case bandGap < lowGapUpper:
		c.Category = CategoryLowGap
	case bandGap <= optimalUpper:
		c.Category = CategoryOptimal
	case bandGap <= moderateUpper:
		c.Category = CategoryModerate
	default:
		c.Category = CategoryHighGap
	}
	return c
}

// IsOptimal devuelve true si bandGap está en el intervalo cerrado [1.1, 1.4] eV.
func IsOptimal(bandGap float64) bool {
	return bandGap >= optimalLower && bandGap <= optimalUpper
}

// String implementa fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
