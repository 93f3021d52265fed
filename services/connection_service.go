package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dbconnectorapi/bootstrap"
	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/pkg/metrics"
	"dbconnectorapi/repository"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"
	"dbconnectorapi/services/dto"
	"dbconnectorapi/services/history"
	"dbconnectorapi/services/pool"
	"dbconnectorapi/utils"
)

// Service-level errors mapped to HTTP statuses by the controllers.
var (
	ErrPoolNotFound     = errors.New("pool not found")
	ErrEmptyQuery       = errors.New("query text is empty")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMetadataDisabled = errors.New("metadata store is disabled")
)

const defaultHistoryLimit = 50

// ConnectionService drives one user action per call: connect, test, query, or list.
type ConnectionService interface {
	Backends() []backend.Template
	Backend(kind string) (backend.Template, error)
	Test(ctx context.Context, req dto.ConnectRequest) error
	Connect(ctx context.Context, reg *pool.Registry, req dto.ConnectRequest) (*pool.Summary, error)
	Connections(reg *pool.Registry) []pool.Summary
	SavedConnections(ctx context.Context) ([]dto.SavedConnection, error)
	QuickQueries(reg *pool.Registry, poolName string) ([]backend.QuickQuery, error)
	Execute(ctx context.Context, reg *pool.Registry, poolName, query string) (*dto.QueryOutcome, error)
	History(ctx context.Context, poolName string, limit int) ([]history.View, error)
}

type connectionService struct {
	backends  *backend.Registry
	connector *connector.Connector
	history   history.Store
	metaRepo  repository.ConnectionMetadataRepository
	now       func() time.Time
}

// NewConnectionService wires the service. metaRepo may be nil when the metadata store is disabled.
func NewConnectionService(
	backends *backend.Registry,
	conn *connector.Connector,
	hist history.Store,
	metaRepo repository.ConnectionMetadataRepository,
) ConnectionService {
	return &connectionService{
		backends:  backends,
		connector: conn,
		history:   hist,
		metaRepo:  metaRepo,
		now:       time.Now,
	}
}

func (s *connectionService) Backends() []backend.Template {
	return s.backends.All()
}

func (s *connectionService) Backend(kind string) (backend.Template, error) {
	k, err := backend.ParseKind(kind)
	if err != nil {
		return backend.Template{}, err
	}
	return s.backends.Lookup(k)
}

// Test checks the connection without registering it.
func (s *connectionService) Test(ctx context.Context, req dto.ConnectRequest) error {
	target, err := s.target(req)
	if err != nil {
		return err
	}

	err = s.connector.TestConnection(ctx, target)
	metrics.ConnectionTests.WithLabelValues(string(target.Kind), metrics.Result(err)).Inc()
	return err
}

// Connect tests the connection and registers it in reg only when the test passes.
func (s *connectionService) Connect(ctx context.Context, reg *pool.Registry, req dto.ConnectRequest) (*pool.Summary, error) {
	target, err := s.target(req)
	if err != nil {
		return nil, err
	}

	logger.Infof("Connecting pool %s (%s)", target.Pool, target.Kind)
	err = s.connector.TestConnection(ctx, target)
	metrics.ConnectionTests.WithLabelValues(string(target.Kind), metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	reg.Register(ctx, pool.Record{
		PoolName:    target.Pool,
		Kind:        target.Kind,
		Credentials: target.Credentials,
		Status:      pool.StatusActive,
	})
	rec, _ := reg.Get(target.Pool)
	summary := rec.Summary()

	logger.Infof("Pool %s registered (%d connection(s) in session)", target.Pool, reg.Len())
	return &summary, nil
}

func (s *connectionService) Connections(reg *pool.Registry) []pool.Summary {
	return reg.Summaries()
}

// SavedConnections lists the metadata store, flagging rows whose kind failed to load at startup.
func (s *connectionService) SavedConnections(_ context.Context) ([]dto.SavedConnection, error) {
	if s.metaRepo == nil {
		return nil, ErrMetadataDisabled
	}
	rows, err := s.metaRepo.List(nil)
	if err != nil {
		return nil, err
	}
	saved := make([]dto.SavedConnection, 0, len(rows))
	for _, meta := range rows {
		saved = append(saved, dto.SavedConnection{
			ConnectionMetadata: meta,
			Unsupported:        bootstrap.IsUnsupportedSaved(meta.PoolName),
		})
	}
	return saved, nil
}

func (s *connectionService) QuickQueries(reg *pool.Registry, poolName string) ([]backend.QuickQuery, error) {
	rec, ok := reg.Get(poolName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, poolName)
	}
	tmpl, err := s.backends.Lookup(rec.Kind)
	if err != nil {
		return nil, err
	}
	return tmpl.QuickQueries(), nil
}

// Execute runs query against a registered pool and appends exactly one history entry for the attempt.
func (s *connectionService) Execute(ctx context.Context, reg *pool.Registry, poolName, query string) (*dto.QueryOutcome, error) {
	rec, ok := reg.Get(poolName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, poolName)
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	executedAt := s.now()
	res, err := s.connector.ExecuteQuery(ctx, rec.Target(), query)

	var duration time.Duration
	rowCount := 0
	if res != nil {
		duration = res.Duration
		rowCount = res.RowCount
	}
	metrics.ObserveQuery(string(rec.Kind), duration, err)

	success, message := connector.Outcome(err)
	s.appendHistory(ctx, history.Entry{
		PoolName:     poolName,
		QueryText:    query,
		ExecutedAt:   executedAt,
		Success:      success,
		RowCount:     rowCount,
		ErrorMessage: message,
	})
	reg.Touch(ctx, poolName)

	if err != nil {
		return nil, err
	}
	return &dto.QueryOutcome{
		PoolName:   poolName,
		DBKind:     string(rec.Kind),
		Columns:    res.Table.Columns,
		Rows:       res.Table.Rows,
		RowCount:   rowCount,
		DurationMs: duration.Milliseconds(),
	}, nil
}

func (s *connectionService) History(ctx context.Context, poolName string, limit int) ([]history.View, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.history.Recent(ctx, poolName, limit)
}

func (s *connectionService) appendHistory(ctx context.Context, e history.Entry) {
	if err := s.history.Append(ctx, e); err != nil {
		metrics.HistoryAppendFailures.Inc()
		logger.Errorf("Failed to append query history for pool %s: %v", e.PoolName, err)
	}
}

func (s *connectionService) target(req dto.ConnectRequest) (connector.Target, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return connector.Target{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	kind, err := backend.ParseKind(req.DBKind)
	if err != nil {
		return connector.Target{}, &connector.Error{
			Category: connector.CategoryUnknownBackend,
			Message:  fmt.Sprintf("unsupported backend %q", req.DBKind),
			Cause:    err,
		}
	}
	return connector.Target{
		Pool:        req.PoolName,
		Kind:        kind,
		Credentials: req.Credentials(),
	}, nil
}
