package warehouse

import (
	"strconv"
	"strings"

	"dbconnectorapi/services/connector"

	"github.com/tidwall/gjson"
)

const (
	valueColumn  = "value"
	resultColumn = "result"
)

// ParseResponse turns the single value returned by the query function into a table.
//
// A JSON array of objects becomes one row per element with columns in first-seen order,
// a JSON object becomes a single row, and anything else becomes a one-cell table unless
// it reads as a failure message.
func ParseResponse(raw string) (*connector.Table, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return connector.NewTable(nil), nil
	}

	if gjson.Valid(text) {
		res := gjson.Parse(text)
		switch {
		case res.IsArray():
			return arrayTable(res), nil
		case res.IsObject():
			return objectTable(res), nil
		case res.Type == gjson.String:
			text = res.String()
		default:
			return singleCell(resultColumn, jsonValue(res)), nil
		}
	}

	if connector.LooksLikeFailure(text) {
		return nil, &connector.Error{Category: connector.CategoryQuery, Message: text}
	}
	return singleCell(resultColumn, text), nil
}

func arrayTable(arr gjson.Result) *connector.Table {
	var columns []string
	index := make(map[string]int)
	hasScalars := false

	arr.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			hasScalars = true
			return true
		}
		el.ForEach(func(key, _ gjson.Result) bool {
			k := key.String()
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
			return true
		})
		return true
	})
	if hasScalars {
		if _, ok := index[valueColumn]; !ok {
			index[valueColumn] = len(columns)
			columns = append(columns, valueColumn)
		}
	}

	table := connector.NewTable(columns)
	arr.ForEach(func(_, el gjson.Result) bool {
		row := make([]any, len(columns))
		if el.IsObject() {
			el.ForEach(func(key, val gjson.Result) bool {
				row[index[key.String()]] = jsonValue(val)
				return true
			})
		} else {
			row[index[valueColumn]] = jsonValue(el)
		}
		table.Rows = append(table.Rows, row)
		return true
	})
	return table
}

func objectTable(obj gjson.Result) *connector.Table {
	var columns []string
	var row []any
	obj.ForEach(func(key, val gjson.Result) bool {
		columns = append(columns, key.String())
		row = append(row, jsonValue(val))
		return true
	})
	table := connector.NewTable(columns)
	if len(columns) > 0 {
		table.Rows = append(table.Rows, row)
	}
	return table
}

func singleCell(column string, v any) *connector.Table {
	table := connector.NewTable([]string{column})
	table.Rows = append(table.Rows, []any{v})
	return table
}

// jsonValue keeps integers exact and leaves nested documents as generic maps and slices.
func jsonValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return i
		}
		return v.Float()
	default:
		return v.Value()
	}
}
