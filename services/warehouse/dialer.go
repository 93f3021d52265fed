package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"

	"github.com/snowflakedb/gosnowflake"
)

// Config locates the warehouse and its data source functions.
type Config struct {
	Account    string
	User       string
	Password   string
	Database   string
	Schema     string
	Warehouse  string
	Role       string
	Statements Statements
}

// Dialer opens warehouse-backed sessions. It satisfies connector.Dialer.
type Dialer struct {
	backends   *backend.Registry
	statements Statements
	open       func() (*sql.DB, error)
}

// NewDialer builds a dialer that reaches the warehouse through the Snowflake driver.
func NewDialer(cfg Config, backends *backend.Registry) (*Dialer, error) {
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Warehouse: cfg.Warehouse,
		Role:      cfg.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("build snowflake dsn: %w", err)
	}

	return newDialer(backends, cfg.Statements, func() (*sql.DB, error) {
		return sql.Open("snowflake", dsn)
	}), nil
}

func newDialer(backends *backend.Registry, statements Statements, open func() (*sql.DB, error)) *Dialer {
	return &Dialer{backends: backends, statements: statements, open: open}
}

// Dial opens a warehouse handle and registers the target's pool definition with it.
func (d *Dialer) Dial(ctx context.Context, target connector.Target) (connector.Session, error) {
	tmpl, err := d.backends.Lookup(target.Kind)
	if err != nil {
		return nil, err
	}

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &connector.Error{Category: connector.CategoryConnection, Message: "warehouse unreachable", Cause: err}
	}

	creds := target.Credentials
	url := tmpl.ConnectionURL(creds.Host, creds.Username, creds.Password, creds.SecurityToken)
	logger.Debugf("Registering pool %s with warehouse: %s", target.Pool, logger.Redact(url))

	stmt, args := d.statements.Add(target.Pool, url, creds.Username, creds.Password, tmpl.DriverClass)
	resp, err := scalar(ctx, db, stmt, args)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if connector.LooksLikeFailure(resp) {
		_ = db.Close()
		return nil, &connector.Error{Category: connector.CategoryConnection, Message: resp}
	}

	logger.Infof("Warehouse accepted pool %s: %s", target.Pool, resp)
	return &session{db: db, pool: target.Pool, statements: d.statements}, nil
}

type session struct {
	db         *sql.DB
	pool       string
	statements Statements
}

func (s *session) Query(ctx context.Context, query string) (*connector.Table, error) {
	stmt, args := s.statements.Query(s.pool, query)
	resp, err := scalar(ctx, s.db, stmt, args)
	if err != nil {
		return nil, err
	}
	return ParseResponse(resp)
}

func (s *session) Close() error {
	return s.db.Close()
}

func scalar(ctx context.Context, db *sql.DB, stmt string, args []any) (string, error) {
	var resp sql.NullString
	if err := db.QueryRowContext(ctx, stmt, args...).Scan(&resp); err != nil {
		return "", err
	}
	return resp.String, nil
}
