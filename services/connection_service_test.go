package services

import (
	"context"
	"errors"
	"testing"

	"dbconnectorapi/bootstrap"
	"dbconnectorapi/models"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"
	"dbconnectorapi/services/dto"
	"dbconnectorapi/services/history"
	"dbconnectorapi/services/pool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	tables  map[string]*connector.Table
	err     error
	closed  *int
	queries *[]string
}

func (s stubSession) Query(_ context.Context, stmt string) (*connector.Table, error) {
	*s.queries = append(*s.queries, stmt)
	if s.err != nil {
		return nil, s.err
	}
	if t, ok := s.tables[stmt]; ok {
		return t, nil
	}
	return connector.NewTable(nil), nil
}

func (s stubSession) Close() error {
	*s.closed++
	return nil
}

type harness struct {
	svc     ConnectionService
	hist    *history.MemoryStore
	reg     *pool.Registry
	dialErr error
	qErr    error
	closed  int
	queries []string
	tables  map[string]*connector.Table
}

func newHarness() *harness {
	h := &harness{tables: map[string]*connector.Table{}}
	backends := backend.NewRegistry(nil)
	dialer := connector.DialerFunc(func(context.Context, connector.Target) (connector.Session, error) {
		if h.dialErr != nil {
			return nil, h.dialErr
		}
		return stubSession{tables: h.tables, err: h.qErr, closed: &h.closed, queries: &h.queries}, nil
	})
	h.hist = history.NewMemoryStore(0)
	h.reg = pool.NewRegistry(nil)
	h.svc = NewConnectionService(backends, connector.New(backends, dialer), h.hist, nil)
	return h
}

func jdeRequest() dto.ConnectRequest {
	return dto.NewConnectRequestBuilder().
		SetPoolName("jde-dev").
		SetDBKind("JDE").
		SetHost("10.25.3.5:1521/e920pdb").
		SetUsername("JDE").
		SetPassword("secret").
		Build()
}

func TestConnectRegistersOnSuccess(t *testing.T) {
	h := newHarness()

	summary, err := h.svc.Connect(context.Background(), h.reg, jdeRequest())

	require.NoError(t, err)
	assert.Equal(t, "jde-dev", summary.PoolName)
	assert.Equal(t, backend.KindJDE, summary.Kind)
	assert.Equal(t, pool.StatusActive, summary.Status)
	assert.Equal(t, []string{"jde-dev"}, h.reg.List())
	assert.Equal(t, []string{"SELECT 1 FROM DUAL"}, h.queries)
	assert.Equal(t, 1, h.closed)
}

func TestConnectFailureRegistersNothing(t *testing.T) {
	h := newHarness()
	h.dialErr = errors.New("ORA-01017: invalid username/password; logon denied")

	_, err := h.svc.Connect(context.Background(), h.reg, jdeRequest())

	require.Error(t, err)
	ok, msg := connector.Outcome(err)
	assert.False(t, ok)
	assert.Contains(t, msg, "ORA-01017")
	assert.Zero(t, h.reg.Len())
}

func TestConnectRejectsBadRequests(t *testing.T) {
	h := newHarness()

	bad := jdeRequest()
	bad.PoolName = "bad pool"
	_, err := h.svc.Connect(context.Background(), h.reg, bad)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	unknown := jdeRequest()
	unknown.DBKind = "Mongo"
	_, err = h.svc.Connect(context.Background(), h.reg, unknown)
	assert.ErrorIs(t, err, connector.ErrUnknownBackend)

	noPw := jdeRequest()
	noPw.Password = ""
	_, err = h.svc.Connect(context.Background(), h.reg, noPw)
	assert.ErrorIs(t, err, connector.ErrMissingCredential)

	assert.Zero(t, h.reg.Len())
	assert.Empty(t, h.queries)
}

func TestTestDoesNotRegister(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.svc.Test(context.Background(), jdeRequest()))
	assert.Zero(t, h.reg.Len())
}

func TestExecuteRecordCountScenario(t *testing.T) {
	h := newHarness()
	const q = "SELECT COUNT(*) as RECORD_COUNT FROM TESTDTA.F0101"
	h.tables[q] = &connector.Table{Columns: []string{"RECORD_COUNT"}, Rows: [][]any{{int64(52311)}}}
	_, err := h.svc.Connect(context.Background(), h.reg, jdeRequest())
	require.NoError(t, err)

	out, err := h.svc.Execute(context.Background(), h.reg, "jde-dev", q)

	require.NoError(t, err)
	assert.Equal(t, []string{"RECORD_COUNT"}, out.Columns)
	assert.Equal(t, [][]any{{int64(52311)}}, out.Rows)
	assert.Equal(t, 1, out.RowCount)
	assert.Equal(t, "JDE", out.DBKind)

	entries, err := h.hist.Recent(context.Background(), "jde-dev", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Success)
	assert.Equal(t, 1, entries[0].RowCount)
	assert.Equal(t, q, entries[0].QueryText)

	rec, _ := h.reg.Get("jde-dev")
	assert.False(t, rec.LastUsedAt.IsZero())
	assert.Equal(t, 2, h.closed)
}

func TestExecuteFailureIsRecorded(t *testing.T) {
	h := newHarness()
	_, err := h.svc.Connect(context.Background(), h.reg, jdeRequest())
	require.NoError(t, err)
	h.qErr = errors.New("ORA-00942: table or view does not exist")

	_, err = h.svc.Execute(context.Background(), h.reg, "jde-dev", "SELECT * FROM NOPE")

	assert.ErrorIs(t, err, connector.ErrQuery)
	entries, _ := h.hist.Recent(context.Background(), "", 0)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Contains(t, entries[0].ErrorMessage, "ORA-00942")
	assert.Zero(t, entries[0].RowCount)
}

func TestExecuteUnknownPoolAndEmptyQuery(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Execute(context.Background(), h.reg, "nope", "SELECT 1 FROM DUAL")
	assert.ErrorIs(t, err, ErrPoolNotFound)

	_, err = h.svc.Connect(context.Background(), h.reg, jdeRequest())
	require.NoError(t, err)
	_, err = h.svc.Execute(context.Background(), h.reg, "jde-dev", "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	entries, _ := h.hist.Recent(context.Background(), "", 0)
	assert.Empty(t, entries)
}

func TestQuickQueriesForRegisteredPool(t *testing.T) {
	h := newHarness()
	sf := dto.NewConnectRequestBuilder().
		SetPoolName("salesforce-dev").
		SetDBKind("salesforce").
		SetUsername("ops@corp.com").
		SetPassword("pw").
		SetSecurityToken("tok").
		Build()
	_, err := h.svc.Connect(context.Background(), h.reg, sf)
	require.NoError(t, err)

	qs, err := h.svc.QuickQueries(h.reg, "salesforce-dev")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT() FROM Account", qs[2].Statement)

	_, err = h.svc.QuickQueries(h.reg, "missing")
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

func TestSavedConnectionsWithoutStore(t *testing.T) {
	h := newHarness()
	_, err := h.svc.SavedConnections(context.Background())
	assert.ErrorIs(t, err, ErrMetadataDisabled)
}

func TestSavedConnectionsFlagsUnsupportedKinds(t *testing.T) {
	repo := newFakeMetaRepo()
	repo.saved["jde-dev"] = models.ConnectionMetadata{PoolName: "jde-dev", DBKind: "JDE"}
	repo.saved["legacy"] = models.ConnectionMetadata{PoolName: "legacy", DBKind: "DB2"}
	require.NoError(t, bootstrap.LoadData(backend.NewRegistry(nil), repo))
	t.Cleanup(func() { bootstrap.UnsupportedSaved = nil })

	backends := backend.NewRegistry(nil)
	svc := NewConnectionService(backends, connector.New(backends, connector.DialerFunc(nil)), history.NewMemoryStore(0), repo)

	saved, err := svc.SavedConnections(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	flags := map[string]bool{}
	for _, s := range saved {
		flags[s.PoolName] = s.Unsupported
	}
	assert.Equal(t, map[string]bool{"jde-dev": false, "legacy": true}, flags)
}

func TestBackendLookup(t *testing.T) {
	h := newHarness()
	assert.Len(t, h.svc.Backends(), 3)

	tmpl, err := h.svc.Backend("sap")
	require.NoError(t, err)
	assert.Equal(t, backend.KindSAP, tmpl.Kind)

	_, err = h.svc.Backend("db2")
	assert.ErrorIs(t, err, backend.ErrUnknownBackend)
}
