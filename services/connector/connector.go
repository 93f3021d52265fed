// Package connector tests connections and runs ad-hoc queries against the supported backends.
// Every call opens its own session and closes it before returning.
package connector

import (
	"context"
	"fmt"
	"time"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/services/backend"
)

const (
	opTest    = "test_connection"
	opExecute = "execute_query"
)

// Connector runs stateless connection tests and queries.
type Connector struct {
	backends *backend.Registry
	dialer   Dialer
	timeout  time.Duration
	now      func() time.Time
}

// Option configures a Connector.
type Option func(*Connector)

// WithTimeout bounds each call. Zero leaves timing to the driver.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) { c.timeout = d }
}

// WithClock overrides the clock used for durations.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) { c.now = now }
}

// New creates a Connector over the given catalogue and dialer.
func New(backends *backend.Registry, dialer Dialer, opts ...Option) *Connector {
	c := &Connector{backends: backends, dialer: dialer, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TestConnection opens a session, runs the kind's probe statement and closes the session.
func (c *Connector) TestConnection(ctx context.Context, target Target) error {
	tmpl, err := c.prepare(opTest, target)
	if err != nil {
		return err
	}

	logger.Infof("Testing %s connection for pool %s (host=%s, user=%s)",
		target.Kind, target.Pool, target.Credentials.Host, target.Credentials.Username)

	if _, err := c.run(ctx, opTest, target, tmpl.ProbeQuery); err != nil {
		logger.Warnf("Connection test failed for pool %s: %v", target.Pool, err)
		return err
	}

	logger.Infof("Connection test succeeded for pool %s", target.Pool)
	return nil
}

// ExecuteQuery opens a session, runs query, materializes every row and closes the session.
func (c *Connector) ExecuteQuery(ctx context.Context, target Target, query string) (*Result, error) {
	if _, err := c.prepare(opExecute, target); err != nil {
		return nil, err
	}

	logger.Debugf("Executing query on pool %s (%s): %s", target.Pool, target.Kind, query)

	start := c.now()
	table, err := c.run(ctx, opExecute, target, query)
	if err != nil {
		logger.Warnf("Query failed on pool %s: %v", target.Pool, err)
		return nil, err
	}

	result := &Result{Table: table, RowCount: table.RowCount(), Duration: c.now().Sub(start)}
	logger.Infof("Query on pool %s returned %d row(s) in %v", target.Pool, result.RowCount, result.Duration)
	return result, nil
}

func (c *Connector) prepare(op string, target Target) (backend.Template, error) {
	tmpl, err := c.backends.Lookup(target.Kind)
	if err != nil {
		return backend.Template{}, &Error{
			Category:  CategoryUnknownBackend,
			Backend:   target.Kind,
			Operation: op,
			Message:   fmt.Sprintf("unsupported backend %q", string(target.Kind)),
			Cause:     err,
		}
	}
	if err := target.Credentials.Validate(tmpl); err != nil {
		return backend.Template{}, wrap(err, CategoryMissingCredential, target.Kind, op, "")
	}
	return tmpl, nil
}

// run dials, executes one statement and closes the session on every path.
func (c *Connector) run(ctx context.Context, op string, target Target, statement string) (*Table, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	session, err := c.dialer.Dial(ctx, target)
	if err != nil {
		return nil, wrap(err, CategoryConnection, target.Kind, op, "connection failed")
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warnf("Closing %s session for pool %s: %v", target.Kind, target.Pool, cerr)
		}
	}()

	table, err := session.Query(ctx, statement)
	if err != nil {
		return nil, wrap(err, CategoryQuery, target.Kind, op, "query failed")
	}
	if table == nil {
		table = NewTable(nil)
	}
	return table, nil
}
