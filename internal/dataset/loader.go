package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"scheduleboard/server/config"
	"scheduleboard/server/internal/models"
)

var (
	ErrMissingSheet  = errors.New("sheet not found")
	ErrMissingColumn = errors.New("required column missing")
	ErrEmptySheet    = errors.New("sheet has no header row")
)

// Parse reads the schedule sheet from an xlsx stream.
func Parse(r io.Reader, sheet string, logger *logrus.Logger) ([]models.Record, error) {
	logger = ensureLogger(logger)
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, sheet, logger)
}

func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return f, nil
}

func parseWorkbook(f *excelize.File, sheet string, logger *logrus.Logger) ([]models.Record, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingSheet, sheet)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	// Raw values keep date cells as serial numbers instead of display text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	colIndex := make(map[string]int)
	for i, col := range rows[0] {
		colIndex[strings.TrimSpace(col)] = i
	}
	var missing []string
	for _, header := range config.GetColumnHeaders() {
		if _, ok := colIndex[header]; !ok {
			missing = append(missing, header)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	records := make([]models.Record, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		rec, ok := parseRow(row, colIndex, i+2, date1904, logger)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	logger.WithFields(logrus.Fields{
		"sheet":   sheet,
		"records": len(records),
		"skipped": skipped,
	}).Info("Parsed schedule sheet")

	return records, nil
}

// parseRow converts one sheet row. Rows without a complex name are skipped.
func parseRow(row []string, colIndex map[string]int, rowNum int, date1904 bool, logger *logrus.Logger) (models.Record, bool) {
	getValue := func(header string) string {
		if idx, ok := colIndex[header]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	getDate := func(header string) *time.Time {
		raw := getValue(header)
		d, ok := parseDate(raw, date1904)
		if !ok {
			logger.WithFields(logrus.Fields{
				"row":    rowNum,
				"column": header,
				"value":  raw,
			}).Debug("Unparsable date, leaving empty")
		}
		return d
	}

	getFloat := func(header string) *float64 {
		val := strings.ReplaceAll(getValue(header), ",", "")
		if val == "" {
			return nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			logger.WithFields(logrus.Fields{"row": rowNum, "column": header, "value": val}).Debug("Unparsable number, leaving empty")
			return nil
		}
		return &f
	}

	getUnits := func(header string) int {
		val := strings.ReplaceAll(getValue(header), ",", "")
		if val == "" {
			return 0
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			f, ferr := strconv.ParseFloat(val, 64)
			if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				logger.WithFields(logrus.Fields{"row": rowNum, "column": header, "value": val}).Warn("Unparsable unit count, using 0")
				return 0
			}
			n = int(math.Round(f))
		}
		if n < 0 {
			logger.WithFields(logrus.Fields{"row": rowNum, "column": header, "value": val}).Warn("Negative unit count, using 0")
			return 0
		}
		return n
	}

	name := getValue(config.ColumnComplex)
	if name == "" {
		return models.Record{}, false
	}

	return models.Record{
		ComplexName:    name,
		Block:          getValue(config.ColumnBlock),
		Category:       getValue(config.ColumnCategory),
		SaleDate:       getDate(config.ColumnSale),
		CompletionDate: getDate(config.ColumnCompletion),
		ResaleDate:     getDate(config.ColumnResale),
		Developer:      getValue(config.ColumnDeveloper),
		Builder:        getValue(config.ColumnBuilder),
		FloorArea:      getFloat(config.ColumnArea),
		UnitCount:      getUnits(config.ColumnUnits),
	}, true
}
