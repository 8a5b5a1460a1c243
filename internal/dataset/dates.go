package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Text layouts accepted for date cells that are not stored as serials.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006.01.02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-1-2",
	"2006.1.2",
	"2006/1/2",
	"2006.01.02.",
	"2006.1.2.",
	"01-02-06",
	"1/2/06",
	"2006년 1월 2일",
}

// Largest serial excelize can represent (9999-12-31).
const maxExcelSerial = 2958465

// parseDate converts a raw cell value into a calendar date. The second return
// is false when the cell is non-empty but could not be parsed.
func parseDate(raw string, date1904 bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}

	if len(raw) == 8 && isDigits(raw) {
		if t, err := time.Parse("20060102", raw); err == nil {
			return truncateDay(t), true
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 || serial > maxExcelSerial {
			return nil, false
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return nil, false
		}
		return truncateDay(t), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return truncateDay(t), true
		}
	}
	return nil, false
}

func truncateDay(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
