package connector

import (
	"database/sql"
	"time"
)

// Table is a fully materialized result set.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns []string) *Table {
	if columns == nil {
		columns = []string{}
	}
	return &Table{Columns: columns, Rows: [][]any{}}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Result is the outcome of a successful query execution.
type Result struct {
	Table    *Table
	RowCount int
	Duration time.Duration
}

// scanRows reads every row eagerly, converting driver byte slices to strings.
func scanRows(rows *sql.Rows) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := NewTable(columns)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case map[string]any:
		delete(x, "attributes")
		for k, nested := range x {
			x[k] = normalizeValue(nested)
		}
		return x
	default:
		return v
	}
}
