package sheets

import (
	"fmt"
	"strings"
)

// Record maps column names to cell values for one spreadsheet row.
type Record map[string]string

// Table is the parsed contents of one worksheet.
type Table struct {
	// Columns holds the header row in sheet order.
	Columns []string

	// Rows holds one record per data row.
	Rows []Record
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// tableFromValues converts the raw value grid returned by the API.
// The first row is treated as the header; short rows leave trailing
// columns empty, extra cells beyond the header are dropped.
func tableFromValues(values [][]interface{}) Table {
	if len(values) == 0 {
		return Table{}
	}

	columns := make([]string, 0, len(values[0]))
	for _, cell := range values[0] {
		columns = append(columns, strings.TrimSpace(fmt.Sprint(cell)))
	}

	rows := make([]Record, 0, len(values)-1)
	for _, raw := range values[1:] {
		rec := make(Record, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(raw) {
				rec[col] = strings.TrimSpace(fmt.Sprint(raw[i]))
			} else {
				rec[col] = ""
			}
		}
		rows = append(rows, rec)
	}
	return Table{Columns: columns, Rows: rows}
}
