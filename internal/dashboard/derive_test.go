package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidanutri/nutriview/internal/nutricore"
)

func TestProgressMessage(t *testing.T) {
	testCases := []struct {
		current  float64
		ideal    float64
		expected string
	}{
		{current: 70, ideal: 70, expected: MessageAtIdealWeight},
		{current: 71, ideal: 70, expected: MessageAtIdealWeight},
		{current: 69, ideal: 70, expected: MessageAtIdealWeight},
		{current: 71.01, ideal: 70, expected: MessageVeryClose},
		{current: 73, ideal: 70, expected: MessageVeryClose},
		{current: 67, ideal: 70, expected: MessageVeryClose},
		{current: 73.01, ideal: 70, expected: MessageKeepGoing},
		{current: 80, ideal: 70, expected: MessageKeepGoing},
		{current: 60, ideal: 70, expected: MessageKeepGoing},
		{current: 0, ideal: 0, expected: MessageAtIdealWeight},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("current_%v_ideal_%v", tc.current, tc.ideal), func(t *testing.T) {
			assert.Equal(t, tc.expected, ProgressMessage(tc.current, tc.ideal))
		})
	}
}

func TestWeightProgressPercent(t *testing.T) {
	testCases := []struct {
		name     string
		current  float64
		ideal    float64
		expected float64
	}{
		{name: "no ideal weight", current: 80, ideal: 0, expected: 0},
		{name: "negative ideal weight", current: 80, ideal: -5, expected: 0},
		{name: "at ideal", current: 70, ideal: 70, expected: 100},
		{name: "under ideal", current: 60, ideal: 70, expected: 100},
		{name: "halfway to ceiling", current: 87.5, ideal: 70, expected: 50},
		{name: "at visual ceiling", current: 105, ideal: 70, expected: 0},
		{name: "beyond visual ceiling", current: 140, ideal: 70, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, WeightProgressPercent(tc.current, tc.ideal), 0.001)
		})
	}
}

func TestWeightProgressPercent_Bounded(t *testing.T) {
	for current := 0.0; current <= 200; current += 7.3 {
		for ideal := 0.0; ideal <= 120; ideal += 11.1 {
			got := WeightProgressPercent(current, ideal)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	}
}

func TestCategorizeBMI(t *testing.T) {
	testCases := []struct {
		bmi      float64
		expected string
	}{
		{bmi: 0, expected: BMILow},
		{bmi: 18.49, expected: BMILow},
		{bmi: 18.5, expected: BMINormal},
		{bmi: 24.99, expected: BMINormal},
		{bmi: 25, expected: BMIOverweight},
		{bmi: 29.99, expected: BMIOverweight},
		{bmi: 30, expected: BMIMildObesity},
		{bmi: 34.99, expected: BMIMildObesity},
		{bmi: 35, expected: BMIModerateObesity},
		{bmi: 39.99, expected: BMIModerateObesity},
		{bmi: 40, expected: BMISevereObesity},
		{bmi: 52.3, expected: BMISevereObesity},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("bmi_%v", tc.bmi), func(t *testing.T) {
			assert.Equal(t, tc.expected, CategorizeBMI(tc.bmi))
		})
	}
}

func TestComputeMetrics_Macros(t *testing.T) {
	metrics := ComputeMetrics(nutricore.Profile{}, nutricore.IntakeGoals{
		DailyProtein: 150,
		DailyCarb:    200,
		DailyFat:     60,
	})

	assert.InDelta(t, 36.59, metrics.Macros.ProteinPercent, 0.001)
	assert.InDelta(t, 48.78, metrics.Macros.CarbPercent, 0.001)
	assert.InDelta(t, 14.63, metrics.Macros.FatPercent, 0.001)

	require.Len(t, metrics.MacroRows, 3)
	assert.Equal(t, 150.0, metrics.MacroRows[0].Grams)
	assert.Equal(t, colorProtein, metrics.MacroRows[0].Color)
	assert.Equal(t, 200.0, metrics.MacroRows[1].Grams)
	assert.Equal(t, colorCarb, metrics.MacroRows[1].Color)
	assert.Equal(t, 60.0, metrics.MacroRows[2].Grams)
	assert.Equal(t, colorFat, metrics.MacroRows[2].Color)
}

func TestComputeMetrics_MacrosZeroTotal(t *testing.T) {
	metrics := ComputeMetrics(nutricore.Profile{}, nutricore.IntakeGoals{})

	assert.Zero(t, metrics.Macros.ProteinPercent)
	assert.Zero(t, metrics.Macros.CarbPercent)
	assert.Zero(t, metrics.Macros.FatPercent)

	// still a full, renderable chart
	require.Len(t, metrics.GradientStops, 3)
	assert.Equal(t, 100.0, metrics.GradientStops[2].EndPercent)
}

func TestComputeMetrics_GradientContiguous(t *testing.T) {
	goals := []nutricore.IntakeGoals{
		{DailyProtein: 150, DailyCarb: 200, DailyFat: 60},
		{DailyProtein: 1, DailyCarb: 1, DailyFat: 1},
		{DailyProtein: 120, DailyCarb: 0, DailyFat: 0},
		{DailyProtein: 0, DailyCarb: 0, DailyFat: 90},
		{DailyProtein: 33.3, DailyCarb: 33.3, DailyFat: 33.4},
	}

	for _, g := range goals {
		metrics := ComputeMetrics(nutricore.Profile{}, g)
		stops := metrics.GradientStops
		require.Len(t, stops, 3)

		assert.Equal(t, 0.0, stops[0].StartPercent)
		assert.Equal(t, stops[0].EndPercent, stops[1].StartPercent)
		assert.Equal(t, stops[1].EndPercent, stops[2].StartPercent)
		assert.Equal(t, 100.0, stops[2].EndPercent)
	}
}

func TestComputeMetrics_ChartGradient(t *testing.T) {
	metrics := ComputeMetrics(nutricore.Profile{}, nutricore.IntakeGoals{
		DailyProtein: 150,
		DailyCarb:    200,
		DailyFat:     60,
	})

	assert.Equal(
		t,
		"conic-gradient(#4caf50 0% 36.59%, #ff9800 36.59% 85.37%, #f44336 85.37% 100%)",
		metrics.ChartGradient,
	)
}

func TestComputeMetrics_EndToEnd(t *testing.T) {
	metrics := ComputeMetrics(
		nutricore.Profile{CurrentWeightKg: 80},
		nutricore.IntakeGoals{
			IdealWeightKg: 70,
			BMI:           24.99,
			DailyProtein:  150,
			DailyCarb:     200,
			DailyFat:      60,
		},
	)

	assert.Equal(t, 10.0, metrics.WeightDifferenceKg)
	assert.Equal(t, MessageKeepGoing, metrics.ProgressMessage)
	assert.Equal(t, BMINormal, metrics.BMICategory)
	assert.InDelta(t, 36.59, metrics.Macros.ProteinPercent, 0.001)
	assert.InDelta(t, 48.78, metrics.Macros.CarbPercent, 0.001)
	assert.InDelta(t, 14.63, metrics.Macros.FatPercent, 0.001)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	profile := nutricore.Profile{CurrentWeightKg: 91.4, BirthDate: "1990-05-20"}
	goals := nutricore.IntakeGoals{
		IdealWeightKg: 78,
		BMI:           31.2,
		DailyProtein:  130,
		DailyCarb:     240,
		DailyFat:      70,
	}

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := ComputeMetricsAt(profile, goals, now)
	second := ComputeMetricsAt(profile, goals, now)
	assert.Equal(t, first, second)
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		birthDate string
		expected  int
	}{
		{name: "plain date", birthDate: "1990-05-20", expected: 35},
		{name: "birthday not yet reached", birthDate: "1990-08-02", expected: 34},
		{name: "rfc3339 timestamp", birthDate: "2000-06-15T00:00:00Z", expected: 25},
		{name: "empty", birthDate: "", expected: 0},
		{name: "garbage", birthDate: "not-a-date", expected: 0},
		{name: "future date", birthDate: "2030-01-01", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ageYears(tc.birthDate, now))
		})
	}
}
