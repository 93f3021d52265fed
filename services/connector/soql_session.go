package connector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	soqlSelectList = regexp.MustCompile(`(?is)^\s*select\s+(.+?)\s+from\s`)
	soqlBareCount  = regexp.MustCompile(`(?i)^count\(\s*\)$`)
)

// RecordCountColumn names the single column of a SELECT COUNT() result.
const RecordCountColumn = "RECORD_COUNT"

// soqlSession runs SOQL through a client that decodes records into maps.
// SELECT COUNT() returns no records, so count reads totalSize from the raw reply instead.
type soqlSession struct {
	query func(soql string, out any) error
	count func(soql string) (int64, error)
}

func (s *soqlSession) Query(ctx context.Context, soql string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.query == nil {
		return nil, errors.New("salesforce session is closed")
	}

	if isBareCount(soql) && s.count != nil {
		n, err := s.count(soql)
		if err != nil {
			return nil, err
		}
		table := NewTable([]string{RecordCountColumn})
		table.Rows = append(table.Rows, []any{n})
		return table, nil
	}

	var records []map[string]any
	if err := s.query(soql, &records); err != nil {
		return nil, err
	}
	return recordsToTable(soql, records), nil
}

func (s *soqlSession) Close() error {
	s.query = nil
	s.count = nil
	return nil
}

// isBareCount reports whether the select list is exactly COUNT().
func isBareCount(soql string) bool {
	m := soqlSelectList.FindStringSubmatch(soql)
	return m != nil && soqlBareCount.MatchString(strings.TrimSpace(m[1]))
}

// totalSize extracts totalSize from a raw /query reply.
func totalSize(body []byte) (int64, error) {
	if !gjson.ValidBytes(body) {
		return 0, errors.New("salesforce returned a malformed query reply")
	}
	size := gjson.GetBytes(body, "totalSize")
	if !size.Exists() {
		return 0, fmt.Errorf("salesforce query reply has no totalSize: %.200s", body)
	}
	return size.Int(), nil
}

// recordsToTable orders columns by the SOQL select list, then any remaining fields alphabetically.
func recordsToTable(soql string, records []map[string]any) *Table {
	var columns []string
	seen := make(map[string]bool)
	for _, field := range selectFields(soql) {
		key := strings.ToLower(field)
		if !seen[key] {
			seen[key] = true
			columns = append(columns, field)
		}
	}

	var extra []string
	for _, rec := range records {
		for k := range rec {
			key := strings.ToLower(k)
			if k == "attributes" || seen[key] || coveredByPath(seen, key) {
				continue
			}
			seen[key] = true
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	columns = append(columns, extra...)

	table := NewTable(columns)
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = normalizeValue(lookupPath(rec, col))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// selectFields returns plain field references from the select list; aggregates and subqueries are skipped.
func selectFields(soql string) []string {
	m := soqlSelectList.FindStringSubmatch(soql)
	if m == nil {
		return nil
	}
	var fields []string
	for _, part := range strings.Split(m[1], ",") {
		f := strings.TrimSpace(part)
		if f == "" || strings.ContainsAny(f, "() ") {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// coveredByPath reports whether key is the root of an already selected dotted path such as Owner.Name.
func coveredByPath(seen map[string]bool, key string) bool {
	for s := range seen {
		if strings.HasPrefix(s, key+".") {
			return true
		}
	}
	return false
}

// lookupPath resolves a possibly dotted field case-insensitively.
func lookupPath(rec map[string]any, path string) any {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = lookupKey(m, part)
	}
	return cur
}

func lookupKey(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}
