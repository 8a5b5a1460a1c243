// Package aggregate derives the dashboard metrics and grouped chart tables
// from a filtered record set. Every function is pure.
package aggregate

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"scheduleboard/server/internal/models"
)

// Summarize computes the scalar metrics. An empty set yields zero values
// everywhere, including the ratio and the mean area.
func Summarize(records []models.Record, publicCategory string) models.Metrics {
	complexes := make(map[string]struct{})
	total, public := 0, 0
	var areaSum float64
	areaCount := 0

	for _, rec := range records {
		complexes[rec.ComplexName] = struct{}{}
		total += rec.UnitCount
		if rec.Category == publicCategory {
			public += rec.UnitCount
		}
		if rec.FloorArea != nil {
			areaSum += *rec.FloorArea
			areaCount++
		}
	}

	m := models.Metrics{
		ComplexCount: len(complexes),
		TotalUnits:   total,
		PublicRatio:  percent(public, total),
	}
	if areaCount > 0 {
		m.AvgFloorArea = areaSum / float64(areaCount)
	}

	m.ComplexLabel = fmt.Sprintf("%d개", m.ComplexCount)
	m.UnitsLabel = humanize.Comma(int64(m.TotalUnits)) + "세대"
	m.RatioLabel = fmt.Sprintf("%.1f%%", m.PublicRatio)
	m.FloorAreaLabel = fmt.Sprintf("%.1f㎡", m.AvgFloorArea)
	return m
}

// Build runs every derivation over the same filtered set.
func Build(records []models.Record, publicCategory string) models.Dashboard {
	return models.Dashboard{
		Metrics:    Summarize(records, publicCategory),
		Monthly:    MonthlySchedule(records),
		Quarterly:  QuarterlyVolume(records),
		Categories: CategorySplit(records),
		Builders:   BuilderTotals(records),
		RowCount:   len(records),
	}
}

// percent returns part/total*100 rounded to one decimal, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
