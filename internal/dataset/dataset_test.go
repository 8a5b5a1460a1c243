package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scheduleboard/server/config"
)

var scheduleHeader = []interface{}{"단지", "블럭", "형태", "분양", "준공", "전매", "시행사", "시공사", "면적", "세대수"}

func buildWorkbook(t *testing.T, sheet string, header []interface{}, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "공급일정.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"A", "A1", "공공 분양", 45597, 45731, 46397, "LH", "X", 84.5, 100},
		{"A", "A2", "민간 분양", "2024-11-01", "2025-06-20", "미정", "LH", "Y", 59.25, 50},
		{"", "", "공공 분양", "", "", "", "", "", "", ""},
		{"B", "B3", "공공 분양", "2024.11.01", 45833, "", "GH", "X", "", "1,200"},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoad(t *testing.T) {
	path := saveWorkbook(t, buildWorkbook(t, "운정", scheduleHeader, sampleRows()))
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store, err := Load(path, "운정", logger)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	records := store.Records()

	first := records[0]
	assert.Equal(t, "A", first.ComplexName)
	assert.Equal(t, "A1", first.Block)
	assert.Equal(t, "공공 분양", first.Category)
	require.NotNil(t, first.SaleDate)
	assert.Equal(t, date(2024, time.November, 1), *first.SaleDate)
	require.NotNil(t, first.CompletionDate)
	assert.Equal(t, date(2025, time.March, 15), *first.CompletionDate)
	require.NotNil(t, first.ResaleDate)
	assert.Equal(t, date(2027, time.January, 10), *first.ResaleDate)
	assert.Equal(t, "LH", first.Developer)
	assert.Equal(t, "X", first.Builder)
	require.NotNil(t, first.FloorArea)
	assert.InDelta(t, 84.5, *first.FloorArea, 1e-9)
	assert.Equal(t, 100, first.UnitCount)

	second := records[1]
	require.NotNil(t, second.CompletionDate)
	assert.Equal(t, date(2025, time.June, 20), *second.CompletionDate)
	assert.Nil(t, second.ResaleDate, "unparsable date should load as nil")
	assert.Equal(t, 50, second.UnitCount)

	third := records[2]
	assert.Equal(t, "B", third.ComplexName)
	require.NotNil(t, third.SaleDate)
	assert.Equal(t, date(2024, time.November, 1), *third.SaleDate)
	assert.Nil(t, third.ResaleDate)
	assert.Nil(t, third.FloorArea)
	assert.Equal(t, 1200, third.UnitCount)

	var sawBadDate bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Unparsable date, leaving empty" && entry.Data["value"] == "미정" {
			sawBadDate = true
		}
	}
	assert.True(t, sawBadDate)

	assert.Equal(t, path, store.Source())
	assert.Equal(t, "운정", store.Sheet())
	assert.False(t, store.LoadedAt().IsZero())
}

func TestStoreRecordsReturnsCachedTable(t *testing.T) {
	path := saveWorkbook(t, buildWorkbook(t, "운정", scheduleHeader, sampleRows()))
	store, err := Load(path, "운정", logrus.New())
	require.NoError(t, err)

	a := store.Records()
	b := store.Records()
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0])
}

func TestLoadFailures(t *testing.T) {
	logger, _ := test.NewNullLogger()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.xlsx"), "운정", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := saveWorkbook(t, buildWorkbook(t, "다른시트", scheduleHeader, sampleRows()))
		_, err := Load(path, "운정", logger)
		assert.ErrorIs(t, err, ErrMissingSheet)
	})

	t.Run("missing column", func(t *testing.T) {
		header := append([]interface{}{}, scheduleHeader[:9]...)
		path := saveWorkbook(t, buildWorkbook(t, "운정", header, nil))
		_, err := Load(path, "운정", logger)
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), config.ColumnUnits)
	})

	t.Run("empty sheet", func(t *testing.T) {
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetName("Sheet1", "운정"))
		_, err := Load(saveWorkbook(t, f), "운정", logger)
		assert.ErrorIs(t, err, ErrEmptySheet)
	})
}

func TestParseFromReader(t *testing.T) {
	f := buildWorkbook(t, "운정", scheduleHeader, sampleRows())
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	records, err := Parse(&buf, "운정", nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestNewStore(t *testing.T) {
	store := NewStore(nil, "memory", "운정")
	assert.NotNil(t, store.Records())
	assert.Equal(t, 0, store.Len())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   *time.Time
		wantOK bool
	}{
		{name: "empty", raw: "", want: nil, wantOK: true},
		{name: "serial", raw: "45731", want: ptr(date(2025, time.March, 15)), wantOK: true},
		{name: "serial with time", raw: "45731.75", want: ptr(date(2025, time.March, 15)), wantOK: true},
		{name: "iso", raw: "2025-06-20", want: ptr(date(2025, time.June, 20)), wantOK: true},
		{name: "dotted", raw: "2025.06.20", want: ptr(date(2025, time.June, 20)), wantOK: true},
		{name: "slashed", raw: "2025/06/20", want: ptr(date(2025, time.June, 20)), wantOK: true},
		{name: "timestamp", raw: "2025-06-20 13:45:00", want: ptr(date(2025, time.June, 20)), wantOK: true},
		{name: "compact", raw: "20250620", want: ptr(date(2025, time.June, 20)), wantOK: true},
		{name: "short dotted", raw: "2025.6.2", want: ptr(date(2025, time.June, 2)), wantOK: true},
		{name: "korean", raw: "2025년 6월 2일", want: ptr(date(2025, time.June, 2)), wantOK: true},
		{name: "text", raw: "미정", want: nil, wantOK: false},
		{name: "negative serial", raw: "-3", want: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.raw, false)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
