package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendSeries_OrderAndLabels(t *testing.T) {
	h := History{rec("CH3NH3PbBr3", 2.1), rec("CsPbI3", 1.25)}
	points := TrendSeries(h)

	require.Len(t, points, 2)
	assert.Equal(t, TrendPoint{Index: 1, Label: "CH3NH3PbBr...", BandGap: 2.1}, points[0])
	assert.Equal(t, TrendPoint{Index: 2, Label: "CsPbI3", BandGap: 1.25}, points[1])
}

func TestTrendSeries_Empty(t *testing.T) {
	assert.Empty(t, TrendSeries(nil))
}

func TestTrendLabel_ExactlyTen(t *testing.T) {
	assert.Equal(t, "ABCDEFGHIJ", TrendLabel("ABCDEFGHIJ"))
	assert.Equal(t, "ABCDEFGHIJ...", TrendLabel("ABCDEFGHIJK"))
}

func TestCategoryCounts_SingleOptimal(t *testing.T) {
	counts := CategoryCounts(History{rec("CsPbI3", 1.25)})
	assert.Equal(t, map[Bucket]int{
		BucketOptimal:  1,
		BucketLowGap:   0,
		BucketModerate: 0,
		BucketHighGap:  0,
	}, counts)
}

func TestCategoryCounts_HighGap(t *testing.T) {
	counts := CategoryCounts(History{rec("MAPbCl3", 2.8)})
	assert.Equal(t, 1, counts[BucketHighGap])
	assert.Equal(t, 0, counts[BucketOptimal])
}

func TestCategoryCounts_RawThresholds(t *testing.T) {
	h := History{
		rec("a", 0.05), // Low Gap
		rec("b", 1.05), // en [1.0, 1.1): ningún bucket
		rec("c", 1.4),  // Optimal y Moderate
		rec("d", 2.0),  // Moderate
		rec("e", 2.5),  // High Gap
	}
	counts := CategoryCounts(h)
	assert.Equal(t, 1, counts[BucketLowGap])
	assert.Equal(t, 1, counts[BucketOptimal])
	assert.Equal(t, 2, counts[BucketModerate])
	assert.Equal(t, 1, counts[BucketHighGap])
}

func TestCategoryCounts_IgnoresStoredCategory(t *testing.T) {
	r := rec("x", 2.5)
	r.EfficiencyCategory = "Optimal for Solar Cells"
	r.IsOptimal = true // dato externo incoherente: se respeta el flag

	counts := CategoryCounts(History{r})
	assert.Equal(t, 1, counts[BucketOptimal])
	assert.Equal(t, 1, counts[BucketHighGap])
}

func TestCategoryCounts_EmptyHasAllBuckets(t *testing.T) {
	counts := CategoryCounts(nil)
	require.Len(t, counts, 4)
	for _, b := range Buckets {
		assert.Equal(t, 0, counts[b])
	}
}
