package connector

import (
	"context"
	"errors"
	"testing"

	"dbconnectorapi/services/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsToTableFollowsSelectOrder(t *testing.T) {
	records := []map[string]any{
		{
			"attributes": map[string]any{"type": "Account"},
			"Name":       "Acme",
			"Id":         "001A",
			"Owner":      map[string]any{"attributes": map[string]any{"type": "User"}, "Name": "Dana"},
		},
		{
			"attributes": map[string]any{"type": "Account"},
			"Name":       "Globex",
			"Id":         "001B",
			"Owner":      nil,
		},
	}

	table := recordsToTable("SELECT Id, Name, Owner.Name FROM Account LIMIT 5", records)

	assert.Equal(t, []string{"Id", "Name", "Owner.Name"}, table.Columns)
	assert.Equal(t, [][]any{
		{"001A", "Acme", "Dana"},
		{"001B", "Globex", nil},
	}, table.Rows)
}

func TestRecordsToTableAppendsUnlistedFieldsSorted(t *testing.T) {
	records := []map[string]any{
		{"attributes": map[string]any{}, "Id": "003A", "expr0": 3, "Email": "a@b.c"},
	}

	table := recordsToTable("SELECT Id, COUNT(Email) FROM Contact GROUP BY Id", records)

	assert.Equal(t, []string{"Id", "Email", "expr0"}, table.Columns)
	assert.Equal(t, []any{"003A", "a@b.c", 3}, table.Rows[0])
}

func TestRecordsToTableMatchesCaseInsensitively(t *testing.T) {
	table := recordsToTable("select id, name from Account", []map[string]any{{"Id": "1", "Name": "x"}})

	assert.Equal(t, []string{"id", "name"}, table.Columns)
	assert.Equal(t, []any{"1", "x"}, table.Rows[0])
}

func TestRecordsToTableNoRecords(t *testing.T) {
	table := recordsToTable("SELECT Id FROM Account LIMIT 1", nil)
	assert.Equal(t, []string{"Id"}, table.Columns)
	assert.Equal(t, 0, table.RowCount())
}

func TestSOQLSession(t *testing.T) {
	var gotSOQL string
	sess := &soqlSession{query: func(soql string, out any) error {
		gotSOQL = soql
		recs := out.(*[]map[string]any)
		*recs = []map[string]any{{"Id": "001"}}
		return nil
	}}

	table, err := sess.Query(context.Background(), "SELECT Id FROM Account LIMIT 1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT Id FROM Account LIMIT 1", gotSOQL)
	assert.Equal(t, 1, table.RowCount())

	require.NoError(t, sess.Close())
	_, err = sess.Query(context.Background(), "SELECT Id FROM Account")
	assert.Error(t, err)
}

func TestSOQLSessionPropagatesErrors(t *testing.T) {
	sess := &soqlSession{query: func(string, any) error {
		return errors.New("MALFORMED_QUERY: unexpected token")
	}}
	_, err := sess.Query(context.Background(), "SELEC Id")
	assert.EqualError(t, err, "MALFORMED_QUERY: unexpected token")
}

func TestSOQLSessionRecordCountQuickQuery(t *testing.T) {
	backends := backend.NewRegistry(nil)
	tmpl, err := backends.Lookup(backend.KindSalesforce)
	require.NoError(t, err)
	countQuery := tmpl.QuickQueries()[2]
	require.Equal(t, "SELECT COUNT() FROM Account", countQuery.Statement)

	var counted string
	sess := &soqlSession{
		query: func(_ string, out any) error {
			// records are empty in a COUNT() reply
			*out.(*[]map[string]any) = []map[string]any{}
			return nil
		},
		count: func(soql string) (int64, error) {
			counted = soql
			return totalSize([]byte(`{"totalSize":1287,"done":true,"records":[]}`))
		},
	}
	conn := New(backends, DialerFunc(func(context.Context, Target) (Session, error) { return sess, nil }))

	res, err := conn.ExecuteQuery(context.Background(), Target{
		Pool: "sf-prod",
		Kind: backend.KindSalesforce,
		Credentials: Credentials{
			Username:      "ops@example.com",
			Password:      "hunter2",
			SecurityToken: "tok",
		},
	}, countQuery.Statement)

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT() FROM Account", counted)
	assert.Equal(t, []string{RecordCountColumn}, res.Table.Columns)
	assert.Equal(t, [][]any{{int64(1287)}}, res.Table.Rows)
	assert.Equal(t, 1, res.RowCount)
}

func TestIsBareCount(t *testing.T) {
	assert.True(t, isBareCount("SELECT COUNT() FROM Account"))
	assert.True(t, isBareCount("select count( ) from Contact where IsDeleted = false"))
	assert.False(t, isBareCount("SELECT COUNT(Id) FROM Account"))
	assert.False(t, isBareCount("SELECT Id, COUNT() FROM Account"))
	assert.False(t, isBareCount("SELECT Id FROM Account"))
}

func TestTotalSize(t *testing.T) {
	n, err := totalSize([]byte(`{"totalSize":0,"done":true,"records":[]}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = totalSize([]byte(`{"done":true}`))
	assert.ErrorContains(t, err, "no totalSize")

	_, err = totalSize([]byte(`<html>`))
	assert.Error(t, err)
}
