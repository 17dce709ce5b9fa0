package notify

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/ports"
	"github.com/alejandrodnm/bandgap/internal/predictor"
	"github.com/olekukonko/tablewriter"
)

const (
	recentRows = 10 // filas de la tabla de predicciones recientes
	scaleWidth = 31
	barMax     = 20
)

// Console implementa ports.Presenter escribiendo en una terminal.
type Console struct {
	out io.Writer
}

var _ ports.Presenter = (*Console)(nil)

// NewConsole crea un presentador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un presentador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// ShowPrediction imprime el resultado de una predicción con su análisis.
func (c *Console) ShowPrediction(r domain.PredictionRecord) {
	fmt.Fprintf(c.out, "\n=== PREDICTION RESULTS === [%s]\n", statusBadge(r.IsOptimal))
	fmt.Fprintf(c.out, "  Formula:            %s\n", r.Formula)
	fmt.Fprintf(c.out, "  Predicted band gap: %.4f eV\n", r.PredictedBandGap)
	fmt.Fprintf(c.out, "  Confidence:         %.3f - %.3f eV\n", r.ConfidenceRange.Lower, r.ConfidenceRange.Upper)
	fmt.Fprintf(c.out, "  Efficiency:         %s\n", r.EfficiencyCategory)

	fmt.Fprintf(c.out, "\n  0 %s 3.0+ eV  (optimal 1.1-1.4)\n", scaleBar(r.PredictedBandGap))
	fmt.Fprintf(c.out, "\n  %s\n\n", domain.Assess(r.PredictedBandGap, r.IsOptimal).Message())
}

// ShowHistory imprime las predicciones más recientes, como mucho 10.
func (c *Console) ShowHistory(h domain.History) {
	if len(h) == 0 {
		fmt.Fprintln(c.out, "  No predictions in history")
		return
	}

	fmt.Fprintf(c.out, "\n=== RECENT PREDICTIONS (%d stored) ===\n", len(h))
	table := tablewriter.NewWriter(c.out)
	table.Header("Formula", "Band Gap (eV)", "Category", "Status")
	for _, r := range h.Recent(recentRows) {
		table.Append(
			r.Formula,
			fmt.Sprintf("%.4f", r.PredictedBandGap),
			r.EfficiencyCategory,
			statusBadge(r.IsOptimal),
		)
	}
	table.Render()
}

// ShowError imprime un mensaje de error para el usuario.
func (c *Console) ShowError(msg string) {
	fmt.Fprintf(c.out, "Error: %s\n", msg)
}

// ShowTrend imprime la serie de tendencia del band gap.
func (c *Console) ShowTrend(points []domain.TrendPoint) {
	if len(points) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\n=== BAND GAP TRENDS ===")
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Formula", "Band Gap (eV)", "")
	for _, p := range points {
		table.Append(
			fmt.Sprintf("%d", p.Index),
			p.Label,
			fmt.Sprintf("%.3f", p.BandGap),
			bar(p.BandGap, domain.ScaleMaxBandGap),
		)
	}
	table.Render()
}

// ShowCounts imprime la distribución por categoría en el orden fijo de buckets.
func (c *Console) ShowCounts(counts map[domain.Bucket]int) {
	fmt.Fprintln(c.out, "\n=== CATEGORY DISTRIBUTION ===")
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Category", "Count", "")
	for _, b := range domain.Buckets {
		n := counts[b]
		table.Append(b.Label(), fmt.Sprintf("%d", n), bar(float64(n), float64(peak)))
	}
	table.Render()
}

// ShowDashboard imprime la vista completa: predicción actual, historial y agregados.
func (c *Console) ShowDashboard(d predictor.Dashboard) {
	if d.LastError != "" {
		c.ShowError(d.LastError)
	}
	if d.Current != nil {
		c.ShowPrediction(*d.Current)
	}
	c.ShowHistory(d.History)
	if len(d.History) == 0 {
		return
	}
	c.ShowTrend(d.Trend)
	c.ShowCounts(d.Counts)
}

// ShowModelInfo imprime la metadata del modelo.
func (c *Console) ShowModelInfo(info domain.ModelInfo) {
	fmt.Fprintln(c.out, "\n=== MODEL INFORMATION ===")
	features := "Unknown"
	if info.FeaturesUsed > 0 {
		features = fmt.Sprintf("%d", info.FeaturesUsed)
	}
	fmt.Fprintf(c.out, "  Algorithm:     %s\n", orDash(info.Algorithm))
	fmt.Fprintf(c.out, "  Features used: %s\n", features)
	fmt.Fprintf(c.out, "  Target metric: %s\n", orDash(info.TargetMetric))
	fmt.Fprintf(c.out, "  Optimization:  %s\n", orDash(info.Optimization))
}

// ShowHealth imprime el estado del servicio.
func (c *Console) ShowHealth(h domain.Health) {
	verdict := "OK"
	if !h.Healthy() {
		verdict = "DEGRADED"
	}
	fmt.Fprintf(c.out, "service: %s [%s]  model:%s  featurizer:%s  dataset:%s\n",
		orDash(h.Status), verdict, yesNo(h.ModelLoaded), yesNo(h.FeaturizerLoaded), yesNo(h.DatasetLoaded))
}

// ShowDataset imprime las estadísticas y la muestra del dataset.
func (c *Console) ShowDataset(d domain.Dataset) {
	s := d.Stats
	fmt.Fprintf(c.out, "\n=== DATASET (%d semiconductors) ===\n", d.TotalRecords)
	fmt.Fprintf(c.out, "  Mean band gap: %.3f eV  (std %.3f)\n", s.MeanBandGap, s.StdBandGap)
	fmt.Fprintf(c.out, "  Range:         %.3f - %.3f eV\n", s.MinBandGap, s.MaxBandGap)
	fmt.Fprintf(c.out, "  Optimal:       %d (%.1f%%)\n", s.OptimalCount, d.OptimalShare())

	if len(d.Sample) == 0 {
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Material ID", "Formula", "Band Gap (eV)", "Status")
	for _, m := range d.Sample {
		table.Append(
			orDash(m.MaterialID),
			orDash(m.Formula),
			fmt.Sprintf("%.4f", m.BandGap),
			statusBadge(domain.IsOptimal(m.BandGap)),
		)
	}
	table.Render()
}

// --- helpers ---

func statusBadge(optimal bool) string {
	if optimal {
		return "⭐ Optimal"
	}
	return "Not Optimal"
}

// scaleBar dibuja la escala 0–3 eV con el marcador en ScalePosition.
func scaleBar(bandGap float64) string {
	pos := domain.ScalePosition(bandGap)
	if math.IsNaN(pos) || pos < 0 {
		pos = 0
	}
	idx := int(math.Round(pos / 100 * float64(scaleWidth-1)))
	cells := []rune(strings.Repeat("-", scaleWidth))
	cells[idx] = '●'
	return "|" + string(cells) + "|"
}

// bar dibuja una barra proporcional a v/peak.
func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 || math.IsNaN(v) {
		return ""
	}
	n := int(math.Round(math.Min(v/peak, 1) * barMax))
	return strings.Repeat("█", n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
