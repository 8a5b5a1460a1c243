package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduleboard/server/internal/filter"
	"scheduleboard/server/internal/models"
)

const public = "공공 분양"

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func area(v float64) *float64 {
	return &v
}

func scenarioRecords() []models.Record {
	return []models.Record{
		{ComplexName: "A", Category: public, Builder: "X", UnitCount: 100, CompletionDate: day(2025, time.March, 15), FloorArea: area(84)},
		{ComplexName: "A", Category: "민간 분양", Builder: "Y", UnitCount: 50, CompletionDate: day(2025, time.June, 20), FloorArea: area(59)},
		{ComplexName: "B", Category: public, Builder: "X", UnitCount: 200, CompletionDate: day(2025, time.June, 25)},
	}
}

func TestScenarioDefaultFilters(t *testing.T) {
	records := scenarioRecords()
	filtered := filter.Apply(records, filter.DefaultSelection(records))

	m := Summarize(filtered, public)
	assert.Equal(t, 2, m.ComplexCount)
	assert.Equal(t, 350, m.TotalUnits)
	assert.Equal(t, 85.7, m.PublicRatio)
	assert.InDelta(t, 71.5, m.AvgFloorArea, 1e-9)
	assert.Equal(t, "2개", m.ComplexLabel)
	assert.Equal(t, "350세대", m.UnitsLabel)
	assert.Equal(t, "85.7%", m.RatioLabel)
	assert.Equal(t, "71.5㎡", m.FloorAreaLabel)

	assert.Equal(t, []models.MonthlyUnits{
		{ComplexName: "A", Month: "2025.03", Units: 100},
		{ComplexName: "A", Month: "2025.06", Units: 50},
		{ComplexName: "B", Month: "2025.06", Units: 200},
	}, MonthlySchedule(filtered))

	assert.Equal(t, []models.QuarterlyUnits{
		{Quarter: "2025Q1", Units: 100},
		{Quarter: "2025Q2", Units: 250},
	}, QuarterlyVolume(filtered))

	assert.Equal(t, []models.BuilderUnits{
		{Builder: "Y", Units: 50},
		{Builder: "X", Units: 300},
	}, BuilderTotals(filtered))

	assert.Equal(t, []models.CategoryUnits{
		{Category: public, Units: 300, Share: 85.7},
		{Category: "민간 분양", Units: 50, Share: 14.3},
	}, CategorySplit(filtered))
}

func TestScenarioBuilderY(t *testing.T) {
	filtered := filter.Apply(scenarioRecords(), filter.Selection{Builders: filter.NewSet("Y")})
	require.Len(t, filtered, 1)

	m := Summarize(filtered, public)
	assert.Equal(t, 50, m.TotalUnits)
	assert.Equal(t, 0.0, m.PublicRatio)
	assert.Equal(t, "0.0%", m.RatioLabel)
}

func TestEmptySet(t *testing.T) {
	for _, records := range [][]models.Record{nil, {}} {
		d := Build(records, public)
		assert.Equal(t, 0, d.Metrics.ComplexCount)
		assert.Equal(t, 0, d.Metrics.TotalUnits)
		assert.Equal(t, 0.0, d.Metrics.PublicRatio)
		assert.Equal(t, 0.0, d.Metrics.AvgFloorArea)
		assert.Equal(t, "0.0%", d.Metrics.RatioLabel)
		assert.Equal(t, 0, d.RowCount)

		assert.NotNil(t, d.Monthly)
		assert.Empty(t, d.Monthly)
		assert.NotNil(t, d.Quarterly)
		assert.NotNil(t, d.Categories)
		assert.NotNil(t, d.Builders)
	}
}

func TestZeroUnitsDoNotDivideByZero(t *testing.T) {
	records := []models.Record{{ComplexName: "A", Category: public, UnitCount: 0}}
	m := Summarize(records, public)
	assert.Equal(t, 0.0, m.PublicRatio)
	assert.Equal(t, []models.CategoryUnits{{Category: public, Units: 0, Share: 0}}, CategorySplit(records))
}

func TestCategoryTotalsMatchUnitSum(t *testing.T) {
	records := append(scenarioRecords(),
		models.Record{ComplexName: "C", Category: "임대", Builder: "Z", UnitCount: 75},
		models.Record{ComplexName: "D", Category: "", Builder: "Z", UnitCount: 5},
	)

	selections := []filter.Selection{
		filter.DefaultSelection(records),
		{Builders: filter.NewSet("Z")},
		{Categories: filter.NewSet(public)},
		{Categories: filter.NewSet()},
	}
	for _, sel := range selections {
		filtered := filter.Apply(records, sel)
		sum := 0
		for _, c := range CategorySplit(filtered) {
			sum += c.Units
		}
		assert.Equal(t, Summarize(filtered, public).TotalUnits, sum)
	}
}

func TestNullCompletionDateExcludedFromTimeGroups(t *testing.T) {
	records := append(scenarioRecords(), models.Record{ComplexName: "C", Category: public, Builder: "Z", UnitCount: 30})

	assert.Equal(t, 380, Summarize(records, public).TotalUnits)
	assert.Equal(t, 3, Summarize(records, public).ComplexCount)
	for _, row := range MonthlySchedule(records) {
		assert.NotEqual(t, "C", row.ComplexName)
	}
	total := 0
	for _, q := range QuarterlyVolume(records) {
		total += q.Units
	}
	assert.Equal(t, 350, total)
}

func TestMonthlyOrdering(t *testing.T) {
	records := []models.Record{
		{ComplexName: "Z", UnitCount: 1, CompletionDate: day(2026, time.January, 5)},
		{ComplexName: "M", UnitCount: 2, CompletionDate: day(2025, time.December, 31)},
		{ComplexName: "A", UnitCount: 3, CompletionDate: day(2026, time.January, 20)},
		{ComplexName: "Z", UnitCount: 4, CompletionDate: day(2026, time.January, 28)},
	}

	assert.Equal(t, []models.MonthlyUnits{
		{ComplexName: "M", Month: "2025.12", Units: 2},
		{ComplexName: "Z", Month: "2026.01", Units: 5},
		{ComplexName: "A", Month: "2026.01", Units: 3},
	}, MonthlySchedule(records))

	assert.Equal(t, []models.QuarterlyUnits{
		{Quarter: "2025Q4", Units: 2},
		{Quarter: "2026Q1", Units: 8},
	}, QuarterlyVolume(records))
}

func TestBuilderTiesKeepFirstSeenOrder(t *testing.T) {
	records := []models.Record{
		{Builder: "K", UnitCount: 10},
		{Builder: "B", UnitCount: 5},
		{Builder: "A", UnitCount: 10},
		{Builder: "B", UnitCount: 5},
	}

	assert.Equal(t, []models.BuilderUnits{
		{Builder: "K", Units: 10},
		{Builder: "B", Units: 10},
		{Builder: "A", Units: 10},
	}, BuilderTotals(records))
}

func TestUnitsLabelUsesThousandsSeparator(t *testing.T) {
	records := []models.Record{{ComplexName: "A", UnitCount: 12345}}
	assert.Equal(t, "12,345세대", Summarize(records, public).UnitsLabel)
}
