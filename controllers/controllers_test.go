package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dbconnectorapi/models"
	"dbconnectorapi/services"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"
	"dbconnectorapi/services/dto"
	"dbconnectorapi/services/history"
	"dbconnectorapi/services/pool"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConnectionService struct {
	mock.Mock
}

func (m *mockConnectionService) Backends() []backend.Template {
	return m.Called().Get(0).([]backend.Template)
}

func (m *mockConnectionService) Backend(kind string) (backend.Template, error) {
	args := m.Called(kind)
	return args.Get(0).(backend.Template), args.Error(1)
}

func (m *mockConnectionService) Test(ctx context.Context, req dto.ConnectRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockConnectionService) Connect(ctx context.Context, reg *pool.Registry, req dto.ConnectRequest) (*pool.Summary, error) {
	args := m.Called(ctx, reg, req)
	s, _ := args.Get(0).(*pool.Summary)
	return s, args.Error(1)
}

func (m *mockConnectionService) Connections(reg *pool.Registry) []pool.Summary {
	return m.Called(reg).Get(0).([]pool.Summary)
}

func (m *mockConnectionService) SavedConnections(ctx context.Context) ([]dto.SavedConnection, error) {
	args := m.Called(ctx)
	saved, _ := args.Get(0).([]dto.SavedConnection)
	return saved, args.Error(1)
}

func (m *mockConnectionService) QuickQueries(reg *pool.Registry, poolName string) ([]backend.QuickQuery, error) {
	args := m.Called(reg, poolName)
	q, _ := args.Get(0).([]backend.QuickQuery)
	return q, args.Error(1)
}

func (m *mockConnectionService) Execute(ctx context.Context, reg *pool.Registry, poolName, query string) (*dto.QueryOutcome, error) {
	args := m.Called(ctx, reg, poolName, query)
	o, _ := args.Get(0).(*dto.QueryOutcome)
	return o, args.Error(1)
}

func (m *mockConnectionService) History(ctx context.Context, poolName string, limit int) ([]history.View, error) {
	args := m.Called(ctx, poolName, limit)
	v, _ := args.Get(0).([]history.View)
	return v, args.Error(1)
}

var _ services.ConnectionService = (*mockConnectionService)(nil)

func newTestRouter(t *testing.T, burst int) (*gin.Engine, *mockConnectionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &mockConnectionService{}
	SetConnectionService(svc)
	SetSessionStore(pool.NewStore(pool.StoreConfig{TTL: time.Hour, QueriesPerMinute: 60, Burst: burst}, nil))

	r := gin.New()
	api := r.Group("/api", SessionMiddleware())
	RegisterBackendRoutes(api)
	RegisterConnectionRoutes(api)
	RegisterQueryRoutes(api)
	RegisterHistoryRoutes(api)
	return r, svc
}

func doJSON(r http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListBackends(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Backends").Return(backend.NewRegistry(nil).All())

	w := doJSON(r, http.MethodGet, "/api/backends", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 3, body["count"])
	assert.NotEmpty(t, w.Header().Get(SessionHeader))
}

func TestGetBackendUnknownKind(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Backend", "Oracle").Return(backend.Template{}, fmt.Errorf("%w: %q", backend.ErrUnknownBackend, "Oracle"))

	w := doJSON(r, http.MethodGet, "/api/backends/Oracle", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_backend", decode(t, w)["error"])
}

func TestCreateConnectionSuccess(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	req := dto.NewConnectRequestBuilder().
		SetPoolName("jde-dev").
		SetDBKind("JDE").
		SetHost("10.25.3.5:1521/e920pdb").
		SetUsername("JDE").
		SetPassword("secret").
		Build()
	svc.On("Connect", mock.Anything, mock.Anything, req).Return(&pool.Summary{
		PoolName: "jde-dev",
		Kind:     backend.KindJDE,
		Host:     "10.25.3.5:1521/e920pdb",
		Username: "JDE",
		Status:   pool.StatusActive,
	}, nil)

	w := doJSON(r, http.MethodPost, "/api/connections", "", req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	conn := body["connection"].(map[string]any)
	assert.Equal(t, "jde-dev", conn["pool_name"])
	assert.Equal(t, "JDE", conn["db_kind"])
	assert.NotContains(t, w.Body.String(), "secret")
	svc.AssertExpectations(t)
}

func TestCreateConnectionUnreachable(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Connect", mock.Anything, mock.Anything, mock.Anything).Return(nil, &connector.Error{
		Category: connector.CategoryConnection,
		Backend:  backend.KindSAP,
		Message:  "dial tcp 10.0.0.1:30015: connection refused",
	})

	w := doJSON(r, http.MethodPost, "/api/connections", "", gin.H{"pool_name": "sap-qa", "db_kind": "SAP"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, "connection_error", body["error"])
	assert.Equal(t, "dial tcp 10.0.0.1:30015: connection refused", body["message"])
}

func TestCreateConnectionMalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/connections", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["error"])
}

func TestTestConnectionMissingCredential(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Test", mock.Anything, mock.Anything).Return(&connector.Error{
		Category: connector.CategoryMissingCredential,
		Backend:  backend.KindSalesforce,
		Message:  "security token is required",
	})

	w := doJSON(r, http.MethodPost, "/api/connections/test", "", gin.H{"pool_name": "sf", "db_kind": "Salesforce"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "missing_credential", body["error"])
	assert.Equal(t, "security token is required", body["message"])
}

func TestTestConnectionSuccess(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Test", mock.Anything, mock.Anything).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/connections/test", "", gin.H{"pool_name": "jde", "db_kind": "JDE"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
	svc.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionIsReusedAcrossRequests(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	var seen []*pool.Registry
	svc.On("Connections", mock.Anything).Run(func(args mock.Arguments) {
		seen = append(seen, args.Get(0).(*pool.Registry))
	}).Return([]pool.Summary{})

	first := doJSON(r, http.MethodGet, "/api/connections", "", nil)
	id := first.Header().Get(SessionHeader)
	require.NotEmpty(t, id)

	second := doJSON(r, http.MethodGet, "/api/connections", id, nil)
	assert.Equal(t, id, second.Header().Get(SessionHeader))

	third := doJSON(r, http.MethodGet, "/api/connections", "expired-session", nil)
	assert.NotEqual(t, "expired-session", third.Header().Get(SessionHeader))

	require.Len(t, seen, 3)
	assert.Same(t, seen[0], seen[1])
	assert.NotSame(t, seen[0], seen[2])
}

func TestSavedConnectionsDisabled(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("SavedConnections", mock.Anything).Return(nil, services.ErrMetadataDisabled)

	w := doJSON(r, http.MethodGet, "/api/connections/saved", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSavedConnectionsFlagsUnsupported(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("SavedConnections", mock.Anything).Return([]dto.SavedConnection{
		{ConnectionMetadata: models.ConnectionMetadata{PoolName: "jde-dev", DBKind: "JDE"}},
		{ConnectionMetadata: models.ConnectionMetadata{PoolName: "legacy", DBKind: "DB2"}, Unsupported: true},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/connections/saved", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Connections []struct {
			PoolName    string `json:"pool_name"`
			Unsupported bool   `json:"unsupported"`
		} `json:"connections"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.False(t, body.Connections[0].Unsupported)
	assert.Equal(t, "legacy", body.Connections[1].PoolName)
	assert.True(t, body.Connections[1].Unsupported)
}

func TestQuickQueriesUnknownPool(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("QuickQueries", mock.Anything, "missing").Return(nil, fmt.Errorf("%w: missing", services.ErrPoolNotFound))

	w := doJSON(r, http.MethodGet, "/api/connections/missing/quick-queries", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecuteQuery(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("Execute", mock.Anything, mock.Anything, "jde-dev", "SELECT COUNT(*) FROM F0101").Return(&dto.QueryOutcome{
		PoolName: "jde-dev",
		DBKind:   "JDE",
		Columns:  []string{"COUNT(*)"},
		Rows:     [][]any{{int64(42)}},
		RowCount: 1,
	}, nil)

	w := doJSON(r, http.MethodPost, "/api/queries/jde-dev", "", dto.QueryRequest{Query: "SELECT COUNT(*) FROM F0101"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["row_count"])
	assert.Equal(t, []any{"COUNT(*)"}, body["columns"])
}

func TestExecuteQueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"unknown pool", fmt.Errorf("%w: x", services.ErrPoolNotFound), http.StatusNotFound, "not_found"},
		{"empty query", services.ErrEmptyQuery, http.StatusBadRequest, "validation_error"},
		{"query error", &connector.Error{Category: connector.CategoryQuery, Message: "ORA-00942: table or view does not exist"}, http.StatusUnprocessableEntity, "query_error"},
		{"connection error", &connector.Error{Category: connector.CategoryConnection, Message: "timeout"}, http.StatusBadGateway, "connection_error"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newTestRouter(t, 5)
			svc.On("Execute", mock.Anything, mock.Anything, "x", "SELECT 1").Return(nil, tt.err)

			w := doJSON(r, http.MethodPost, "/api/queries/x", "", dto.QueryRequest{Query: "SELECT 1"})

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.label, decode(t, w)["error"])
		})
	}
}

func TestExecuteQueryRateLimited(t *testing.T) {
	r, svc := newTestRouter(t, 1)
	svc.On("Execute", mock.Anything, mock.Anything, "jde-dev", "SELECT 1 FROM DUAL").
		Return(&dto.QueryOutcome{PoolName: "jde-dev"}, nil).Once()

	first := doJSON(r, http.MethodPost, "/api/queries/jde-dev", "", dto.QueryRequest{Query: "SELECT 1 FROM DUAL"})
	require.Equal(t, http.StatusOK, first.Code)
	id := first.Header().Get(SessionHeader)

	second := doJSON(r, http.MethodPost, "/api/queries/jde-dev", id, dto.QueryRequest{Query: "SELECT 1 FROM DUAL"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate_limited", decode(t, second)["error"])
	svc.AssertNumberOfCalls(t, "Execute", 1)
}

func TestListHistory(t *testing.T) {
	r, svc := newTestRouter(t, 5)
	svc.On("History", mock.Anything, "jde-dev", maxHistoryLimit).Return([]history.View{
		{ID: 1, Entry: history.Entry{PoolName: "jde-dev", QueryText: "SELECT 1 FROM DUAL", Success: true, RowCount: 1}},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/history?pool=jde-dev&limit=10000", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestListHistoryInvalidLimit(t *testing.T) {
	r, _ := newTestRouter(t, 5)

	w := doJSON(r, http.MethodGet, "/api/history?limit=abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionMiddlewareWithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetSessionStore(nil)
	r := gin.New()
	r.GET("/x", SessionMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
