package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"scheduleboard/server/config"
	"scheduleboard/server/internal/models"
)

// TableDateLayout is the date format of the table view and the CSV export.
const TableDateLayout = "2006-01-02"

// utf8BOM lets spreadsheet applications detect the encoding of the export.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Rows formats records for the table view.
func Rows(records []models.Record) []models.TableRow {
	rows := make([]models.TableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.TableRow{
			ComplexName:    rec.ComplexName,
			Block:          rec.Block,
			Category:       rec.Category,
			SaleDate:       FormatTableDate(rec.SaleDate),
			CompletionDate: FormatTableDate(rec.CompletionDate),
			ResaleDate:     FormatTableDate(rec.ResaleDate),
			Developer:      rec.Developer,
			Builder:        rec.Builder,
			FloorArea:      formatArea(rec.FloorArea),
			UnitCount:      rec.UnitCount,
		})
	}
	return rows
}

// WriteCSV writes the table as a UTF-8 CSV with a byte-order mark.
func WriteCSV(w io.Writer, records []models.Record) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(config.GetColumnHeaders()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range Rows(records) {
		record := []string{
			row.ComplexName,
			row.Block,
			row.Category,
			row.SaleDate,
			row.CompletionDate,
			row.ResaleDate,
			row.Developer,
			row.Builder,
			row.FloorArea,
			strconv.Itoa(row.UnitCount),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatTableDate renders a date as YYYY-MM-DD, or "" for a missing date.
func FormatTableDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TableDateLayout)
}

// ParseTableDate reverses FormatTableDate.
func ParseTableDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(TableDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid table date %q: %w", s, err)
	}
	return &t, nil
}

// ContentDisposition builds an attachment header for a possibly non-ASCII
// filename, with an ASCII fallback for old clients.
func ContentDisposition(filename string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", asciiFallback(filename), encoded)
}

func asciiFallback(filename string) string {
	for _, r := range filename {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return "schedule" + path.Ext(filename)
		}
	}
	return filename
}

func formatArea(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
