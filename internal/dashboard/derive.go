package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vidanutri/nutriview/internal/nutricore"
)

// Chart colors for protein, carbs and fat, matching the web client palette.
const (
	colorProtein = "#4caf50"
	colorCarb    = "#ff9800"
	colorFat     = "#f44336"
)

// The three weight progress message tiers.
const (
	MessageAtIdealWeight = "You are at your ideal weight, great work!"
	MessageVeryClose     = "You are very close, one last push!"
	MessageKeepGoing     = "There is still some way to go, you can do it!"
)

// BMI categories.
const (
	BMILow             = "low"
	BMINormal          = "normal"
	BMIOverweight      = "overweight"
	BMIMildObesity     = "mild obesity"
	BMIModerateObesity = "moderate obesity"
	BMISevereObesity   = "severe obesity"
)

// GradientStop is one arc segment of the circular macro chart. Stops are
// contiguous: the end of one stop is exactly the start of the next, so the
// chart never shows gaps regardless of rounding.
type GradientStop struct {
	Color        string  `json:"color"`
	StartPercent float64 `json:"startPercent"`
	EndPercent   float64 `json:"endPercent"`
}

// MacroRow is one display row of the macro breakdown.
type MacroRow struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Grams   float64 `json:"grams"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

type MacroBreakdown struct {
	ProteinPercent float64 `json:"proteinPercent"`
	CarbPercent    float64 `json:"carbPercent"`
	FatPercent     float64 `json:"fatPercent"`
}

// DerivedMetrics is the full set of values derived from a subject's merged
// record. It is never persisted, only computed and rendered.
type DerivedMetrics struct {
	CurrentWeightKg    float64 `json:"currentWeightKg"`
	IdealWeightKg      float64 `json:"idealWeightKg"`
	WeightDifferenceKg float64 `json:"weightDifferenceKg"`

	// WeightProgressPercent is a presentation heuristic, not a clinical
	// measure: 100 at/under the ideal weight, falling to 0 as the current
	// weight approaches 1.5x the ideal.
	WeightProgressPercent float64 `json:"weightProgressPercent"`
	ProgressMessage       string  `json:"progressMessage"`

	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmiCategory"`

	AgeYears int `json:"ageYears"`

	Macros        MacroBreakdown `json:"macros"`
	MacroRows     []MacroRow     `json:"macroRows"`
	GradientStops []GradientStop `json:"gradientStops"`
	ChartGradient string         `json:"chartGradient"`
}

// ComputeMetrics derives the dashboard values from a subject's profile and
// intake goals. It is a pure mapping (modulo the current date, used only for
// the age): identical inputs always produce identical outputs, and degenerate
// inputs (zero weights, zero macro totals, absent BMI) degrade to renderable
// zero values instead of failing.
func ComputeMetrics(profile nutricore.Profile, goals nutricore.IntakeGoals) DerivedMetrics {
	return ComputeMetricsAt(profile, goals, time.Now())
}

func ComputeMetricsAt(profile nutricore.Profile, goals nutricore.IntakeGoals, now time.Time) DerivedMetrics {
	current := profile.CurrentWeightKg
	ideal := goals.IdealWeightKg

	proteinPct, carbPct, fatPct := macroPercentages(goals.DailyProtein, goals.DailyCarb, goals.DailyFat)
	stops := gradientStops(proteinPct, carbPct)

	return DerivedMetrics{
		CurrentWeightKg:    current,
		IdealWeightKg:      ideal,
		WeightDifferenceKg: round2(current - ideal),

		WeightProgressPercent: WeightProgressPercent(current, ideal),
		ProgressMessage:       ProgressMessage(current, ideal),

		BMI:         goals.BMI,
		BMICategory: CategorizeBMI(goals.BMI),

		AgeYears: ageYears(profile.BirthDate, now),

		Macros: MacroBreakdown{
			ProteinPercent: proteinPct,
			CarbPercent:    carbPct,
			FatPercent:     fatPct,
		},
		MacroRows: []MacroRow{
			{Key: "protein", Label: "Protein", Grams: goals.DailyProtein, Percent: proteinPct, Color: colorProtein},
			{Key: "carbs", Label: "Carbohydrates", Grams: goals.DailyCarb, Percent: carbPct, Color: colorCarb},
			{Key: "fat", Label: "Fat", Grams: goals.DailyFat, Percent: fatPct, Color: colorFat},
		},
		GradientStops: stops,
		ChartGradient: renderGradient(stops),
	}
}

// ProgressMessage buckets the absolute distance to the ideal weight into
// three fixed tiers. Note that the tiers are deliberately unrelated to
// WeightProgressPercent: the message uses symmetric distance bands, the
// percent an asymmetric formula favoring "already at/under ideal".
func ProgressMessage(currentKg, idealKg float64) string {
	diff := math.Abs(currentKg - idealKg)
	switch {
	case diff <= 1:
		return MessageAtIdealWeight
	case diff <= 3:
		return MessageVeryClose
	default:
		return MessageKeepGoing
	}
}

// WeightProgressPercent returns 0 without an ideal weight signal, 100 when
// the target is reached or exceeded, and otherwise a diminishing score as the
// current weight moves towards a visual ceiling of 1.5x the ideal weight.
func WeightProgressPercent(currentKg, idealKg float64) float64 {
	if idealKg <= 0 {
		return 0
	}
	if currentKg <= idealKg {
		return 100
	}

	baseVisual := idealKg * 1.5
	totalRange := baseVisual - idealKg
	currentPosition := baseVisual - currentKg

	return math.Max(0, math.Min(100, currentPosition/totalRange*100))
}

// CategorizeBMI maps a BMI value onto six fixed tiers. An absent BMI decodes
// to 0 upstream and lands in the lowest tier.
func CategorizeBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMILow
	case bmi <= 24.99:
		return BMINormal
	case bmi <= 29.99:
		return BMIOverweight
	case bmi <= 34.99:
		return BMIMildObesity
	case bmi <= 39.99:
		return BMIModerateObesity
	default:
		return BMISevereObesity
	}
}

// macroPercentages computes each macro's share of the total grams, rounded
// to 2 decimals each. A zero total is substituted with 1 so that all shares
// read as 0 instead of dividing by zero. The three rounded values are not
// forced to sum to exactly 100.
func macroPercentages(proteinGrams, carbGrams, fatGrams float64) (proteinPct, carbPct, fatPct float64) {
	total := proteinGrams + carbGrams + fatGrams
	if total == 0 {
		total = 1
	}

	proteinPct = round2(proteinGrams * 100 / total)
	carbPct = round2(carbGrams * 100 / total)
	fatPct = round2(fatGrams * 100 / total)
	return proteinPct, carbPct, fatPct
}

// gradientStops lays the three macro arcs around the full circle. The fat
// stop always ends at 100, absorbing any rounding slack from the first two.
func gradientStops(proteinPct, carbPct float64) []GradientStop {
	return []GradientStop{
		{Color: colorProtein, StartPercent: 0, EndPercent: proteinPct},
		{Color: colorCarb, StartPercent: proteinPct, EndPercent: proteinPct + carbPct},
		{Color: colorFat, StartPercent: proteinPct + carbPct, EndPercent: 100},
	}
}

func renderGradient(stops []GradientStop) string {
	parts := make([]string, 0, len(stops))
	for _, stop := range stops {
		parts = append(parts, fmt.Sprintf(
			"%s %s%% %s%%",
			stop.Color, formatPercent(stop.StartPercent), formatPercent(stop.EndPercent),
		))
	}
	return fmt.Sprintf("conic-gradient(%s)", strings.Join(parts, ", "))
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ageYears computes full years since the birth date. Unparseable or absent
// birth dates give age 0.
func ageYears(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}

	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		if born, err = time.Parse(time.RFC3339, birthDate); err != nil {
			return 0
		}
	}

	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
