// Package warehouse runs backend queries through data source functions hosted in a Snowflake warehouse.
package warehouse

import (
	"fmt"
	"strings"

	"dbconnectorapi/utils"
)

// Statements builds calls to the warehouse data source functions.
type Statements struct {
	AddFunction   string
	QueryFunction string
	// Bind sends values as bound parameters; otherwise every value is embedded as an escaped literal.
	Bind bool
}

// Add builds the call that registers (or replaces) a pool definition in the warehouse.
func (s Statements) Add(pool, url, username, password, driverClass string) (string, []any) {
	return s.call(s.AddFunction, pool, url, username, password, driverClass)
}

// Query builds the call that runs query against a registered pool.
func (s Statements) Query(pool, query string) (string, []any) {
	return s.call(s.QueryFunction, pool, query)
}

func (s Statements) call(fn string, values ...string) (string, []any) {
	if s.Bind {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		args := make([]any, len(values))
		for i, v := range values {
			args[i] = v
		}
		return fmt.Sprintf("SELECT %s(%s)", fn, placeholders), args
	}

	literals := make([]string, len(values))
	for i, v := range values {
		literals[i] = utils.QuoteLiteral(v)
	}
	return fmt.Sprintf("SELECT %s(%s)", fn, strings.Join(literals, ", ")), nil
}
