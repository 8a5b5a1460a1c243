package models

import "time"

// Record is one row of the supply schedule sheet.
type Record struct {
	ComplexName    string     `json:"complex_name"`
	Block          string     `json:"block"`
	Category       string     `json:"category"`
	SaleDate       *time.Time `json:"sale_date"`
	CompletionDate *time.Time `json:"completion_date"`
	ResaleDate     *time.Time `json:"resale_date"`
	Developer      string     `json:"developer"`
	Builder        string     `json:"builder"`
	FloorArea      *float64   `json:"floor_area"`
	UnitCount      int        `json:"unit_count"`
}

// FilterOptions lists the distinct values a selection can be built from.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Builders   []string `json:"builders"`
}

type Metrics struct {
	ComplexCount   int     `json:"complex_count"`
	TotalUnits     int     `json:"total_units"`
	PublicRatio    float64 `json:"public_ratio"`
	AvgFloorArea   float64 `json:"avg_floor_area"`
	ComplexLabel   string  `json:"complex_label"`
	UnitsLabel     string  `json:"units_label"`
	RatioLabel     string  `json:"ratio_label"`
	FloorAreaLabel string  `json:"floor_area_label"`
}

// MonthlyUnits is the unit total for one complex in one completion month.
type MonthlyUnits struct {
	ComplexName string `json:"complex_name"`
	Month       string `json:"month"`
	Units       int    `json:"units"`
}

type QuarterlyUnits struct {
	Quarter string `json:"quarter"`
	Units   int    `json:"units"`
}

type CategoryUnits struct {
	Category string  `json:"category"`
	Units    int     `json:"units"`
	Share    float64 `json:"share"`
}

type BuilderUnits struct {
	Builder string `json:"builder"`
	Units   int    `json:"units"`
}

// Dashboard bundles every derived view for one filter selection.
type Dashboard struct {
	Metrics    Metrics          `json:"metrics"`
	Monthly    []MonthlyUnits   `json:"monthly"`
	Quarterly  []QuarterlyUnits `json:"quarterly"`
	Categories []CategoryUnits  `json:"categories"`
	Builders   []BuilderUnits   `json:"builders"`
	RowCount   int              `json:"row_count"`
}

// TableRow is a record formatted for the table view and the CSV export.
type TableRow struct {
	ComplexName    string `json:"complex_name"`
	Block          string `json:"block"`
	Category       string `json:"category"`
	SaleDate       string `json:"sale_date"`
	CompletionDate string `json:"completion_date"`
	ResaleDate     string `json:"resale_date"`
	Developer      string `json:"developer"`
	Builder        string `json:"builder"`
	FloorArea      string `json:"floor_area"`
	UnitCount      int    `json:"unit_count"`
}
