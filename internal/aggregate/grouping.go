package aggregate

import (
	"fmt"
	"sort"

	"scheduleboard/server/internal/models"
)

// MonthlySchedule sums units per complex and completion month. Rows are
// chronological; complexes completing in the same month keep first-seen order.
// Records without a completion date are left out.
func MonthlySchedule(records []models.Record) []models.MonthlyUnits {
	type key struct {
		complex string
		year    int
		month   int
	}

	complexOrder := make(map[string]int)
	totals := make(map[key]int)
	var keys []key

	for _, rec := range records {
		if rec.CompletionDate == nil {
			continue
		}
		if _, ok := complexOrder[rec.ComplexName]; !ok {
			complexOrder[rec.ComplexName] = len(complexOrder)
		}
		d := rec.CompletionDate
		k := key{complex: rec.ComplexName, year: d.Year(), month: int(d.Month())}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] += rec.UnitCount
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return complexOrder[a.complex] < complexOrder[b.complex]
	})

	result := make([]models.MonthlyUnits, 0, len(keys))
	for _, k := range keys {
		result = append(result, models.MonthlyUnits{
			ComplexName: k.complex,
			Month:       fmt.Sprintf("%04d.%02d", k.year, k.month),
			Units:       totals[k],
		})
	}
	return result
}

// QuarterlyVolume sums units per completion quarter in chronological order.
func QuarterlyVolume(records []models.Record) []models.QuarterlyUnits {
	totals := make(map[int]int)
	var quarters []int

	for _, rec := range records {
		if rec.CompletionDate == nil {
			continue
		}
		q := rec.CompletionDate.Year()*4 + (int(rec.CompletionDate.Month())-1)/3
		if _, ok := totals[q]; !ok {
			quarters = append(quarters, q)
		}
		totals[q] += rec.UnitCount
	}

	sort.Ints(quarters)

	result := make([]models.QuarterlyUnits, 0, len(quarters))
	for _, q := range quarters {
		result = append(result, models.QuarterlyUnits{
			Quarter: fmt.Sprintf("%dQ%d", q/4, q%4+1),
			Units:   totals[q],
		})
	}
	return result
}

// CategorySplit sums units per category, ordered by category name.
func CategorySplit(records []models.Record) []models.CategoryUnits {
	totals := make(map[string]int)
	var categories []string
	total := 0

	for _, rec := range records {
		if _, ok := totals[rec.Category]; !ok {
			categories = append(categories, rec.Category)
		}
		totals[rec.Category] += rec.UnitCount
		total += rec.UnitCount
	}

	sort.Strings(categories)

	result := make([]models.CategoryUnits, 0, len(categories))
	for _, c := range categories {
		result = append(result, models.CategoryUnits{
			Category: c,
			Units:    totals[c],
			Share:    percent(totals[c], total),
		})
	}
	return result
}

// BuilderTotals sums units per builder, ascending by total. Equal totals keep
// first-seen builder order.
func BuilderTotals(records []models.Record) []models.BuilderUnits {
	totals := make(map[string]int)
	var builders []string

	for _, rec := range records {
		if _, ok := totals[rec.Builder]; !ok {
			builders = append(builders, rec.Builder)
		}
		totals[rec.Builder] += rec.UnitCount
	}

	sort.SliceStable(builders, func(i, j int) bool {
		return totals[builders[i]] < totals[builders[j]]
	})

	result := make([]models.BuilderUnits, 0, len(builders))
	for _, b := range builders {
		result = append(result, models.BuilderUnits{Builder: b, Units: totals[b]})
	}
	return result
}
