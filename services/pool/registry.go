// Package pool keeps the connections registered within one user session.
package pool

import (
	"context"
	"sync"
	"time"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"
)

// Status of a registered connection.
type Status string

// StatusActive is the only status a registered connection can have.
const StatusActive Status = "active"

// Record is one registered connection. Credentials stay in process memory.
type Record struct {
	PoolName     string
	Kind         backend.Kind
	Credentials  connector.Credentials
	Status       Status
	RegisteredAt time.Time
	LastUsedAt   time.Time
}

// Target returns what the connector needs to open a session for this record.
func (r Record) Target() connector.Target {
	return connector.Target{Pool: r.PoolName, Kind: r.Kind, Credentials: r.Credentials}
}

// Summary is the non-secret view of a record.
type Summary struct {
	PoolName   string       `json:"pool_name"`
	Kind       backend.Kind `json:"db_kind"`
	Host       string       `json:"host"`
	Username   string       `json:"username"`
	Status     Status       `json:"status"`
	HasToken   bool         `json:"has_token"`
	LastUsedAt *time.Time   `json:"last_used_at,omitempty"`
}

// Summary drops the password and token.
func (r Record) Summary() Summary {
	s := Summary{
		PoolName: r.PoolName,
		Kind:     r.Kind,
		Host:     r.Credentials.Host,
		Username: r.Credentials.Username,
		Status:   r.Status,
		HasToken: r.Credentials.HasToken(),
	}
	if !r.LastUsedAt.IsZero() {
		at := r.LastUsedAt
		s.LastUsedAt = &at
	}
	return s
}

// Mirror persists summaries outside the session. Failures never block registration.
type Mirror interface {
	Save(ctx context.Context, s Summary) error
	Touch(ctx context.Context, poolName string, at time.Time) error
}

// Registry holds the connections of one session, keyed by pool name in insertion order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*Record
	mirror  Mirror
	now     func() time.Time
}

// NewRegistry creates an empty registry. mirror may be nil.
func NewRegistry(mirror Mirror) *Registry {
	return &Registry{
		records: make(map[string]*Record),
		mirror:  mirror,
		now:     time.Now,
	}
}

// Register adds rec or replaces the record with the same pool name, keeping its position.
func (r *Registry) Register(ctx context.Context, rec Record) {
	if rec.Status == "" {
		rec.Status = StatusActive
	}
	if rec.RegisteredAt.IsZero() {
		rec.RegisteredAt = r.now()
	}

	r.mu.Lock()
	if _, exists := r.records[rec.PoolName]; !exists {
		r.order = append(r.order, rec.PoolName)
	} else {
		logger.Infof("Replacing registered connection %s", rec.PoolName)
	}
	r.records[rec.PoolName] = &rec
	r.mu.Unlock()

	if r.mirror != nil {
		if err := r.mirror.Save(ctx, rec.Summary()); err != nil {
			logger.Warnf("Failed to mirror connection metadata for %s: %v", rec.PoolName, err)
		}
	}
}

// Get returns the record for poolName.
func (r *Registry) Get(poolName string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[poolName]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// List returns pool names in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Records returns copies of every record in insertion order, credentials included.
func (r *Registry) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.records[name])
	}
	return out
}

// Summaries returns the non-secret view of every record in insertion order.
func (r *Registry) Summaries() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name].Summary())
	}
	return out
}

// Touch records a use of poolName. Unknown pools are ignored.
func (r *Registry) Touch(ctx context.Context, poolName string) {
	at := r.now()

	r.mu.Lock()
	rec, ok := r.records[poolName]
	if ok {
		rec.LastUsedAt = at
	}
	r.mu.Unlock()

	if ok && r.mirror != nil {
		if err := r.mirror.Touch(ctx, poolName, at); err != nil {
			logger.Warnf("Failed to update last use of %s: %v", poolName, err)
		}
	}
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
