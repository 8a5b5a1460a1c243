package config

// Column is one header of the supply schedule sheet
type Column struct {
	Key    string
	Header string
}

// Header names of the schedule sheet. Renaming any of them in the workbook
// breaks loading.
const (
	ColumnComplex    = "단지"
	ColumnBlock      = "블럭"
	ColumnCategory   = "형태"
	ColumnSale       = "분양"
	ColumnCompletion = "준공"
	ColumnResale     = "전매"
	ColumnDeveloper  = "시행사"
	ColumnBuilder    = "시공사"
	ColumnArea       = "면적"
	ColumnUnits      = "세대수"
)

// ScheduleColumns is the table order used for display and export
var ScheduleColumns = []Column{
	{Key: "complex_name", Header: ColumnComplex},
	{Key: "block", Header: ColumnBlock},
	{Key: "category", Header: ColumnCategory},
	{Key: "sale_date", Header: ColumnSale},
	{Key: "completion_date", Header: ColumnCompletion},
	{Key: "resale_date", Header: ColumnResale},
	{Key: "developer", Header: ColumnDeveloper},
	{Key: "builder", Header: ColumnBuilder},
	{Key: "floor_area", Header: ColumnArea},
	{Key: "unit_count", Header: ColumnUnits},
}

// GetColumnHeaders returns the sheet headers in table order
func GetColumnHeaders() []string {
	headers := make([]string, len(ScheduleColumns))
	for i, col := range ScheduleColumns {
		headers[i] = col.Header
	}
	return headers
}

// GetColumnByKey returns a column by its field key
func GetColumnByKey(key string) *Column {
	for _, col := range ScheduleColumns {
		if col.Key == key {
			return &col
		}
	}
	return nil
}
