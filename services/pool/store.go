package pool

import (
	"time"

	"dbconnectorapi/pkg/logger"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Session is the per-user state: its connection registry and query budget.
type Session struct {
	ID       string
	Registry *Registry
	limiter  *rate.Limiter
}

// AllowQuery consumes one query token, reporting false when the session is over its rate.
func (s *Session) AllowQuery() bool {
	return s.limiter.Allow()
}

// StoreConfig controls session lifetime and query rate.
type StoreConfig struct {
	TTL              time.Duration
	QueriesPerMinute int
	Burst            int
}

// Store holds sessions with a sliding expiry. Expired sessions take their credentials with them.
type Store struct {
	cache  *gocache.Cache
	mirror Mirror
	cfg    StoreConfig
}

// NewStore creates a session store. mirror is shared by every session's registry and may be nil.
func NewStore(cfg StoreConfig, mirror Mirror) *Store {
	cleanup := cfg.TTL / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := gocache.New(cfg.TTL, cleanup)
	c.OnEvicted(func(id string, v interface{}) {
		if sess, ok := v.(*Session); ok {
			logger.Infof("Session %s ended, dropping %d connection(s)", shortID(id), sess.Registry.Len())
		}
	})
	return &Store{cache: c, mirror: mirror, cfg: cfg}
}

// Resolve returns the live session for id and extends its lifetime.
// An empty or unknown id gets a brand-new session with a server-generated id.
func (s *Store) Resolve(id string) (sess *Session, created bool) {
	if id != "" {
		if v, ok := s.cache.Get(id); ok {
			sess = v.(*Session)
			s.cache.SetDefault(id, sess)
			return sess, false
		}
	}

	sess = &Session{
		ID:       uuid.NewString(),
		Registry: NewRegistry(s.mirror),
		limiter:  rate.NewLimiter(rate.Limit(float64(s.cfg.QueriesPerMinute)/60), s.cfg.Burst),
	}
	s.cache.SetDefault(sess.ID, sess)
	logger.Infof("Session %s started", shortID(sess.ID))
	return sess, true
}

// Get returns the session for id without extending it.
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// End discards the session immediately.
func (s *Store) End(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
