package pool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	return NewStore(StoreConfig{TTL: time.Hour, QueriesPerMinute: 60, Burst: 2}, nil)
}

func TestResolveCreatesAndReuses(t *testing.T) {
	s := testStore()

	first, created := s.Resolve("")
	require.True(t, created)
	assert.NotEmpty(t, first.ID)

	again, created := s.Resolve(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Equal(t, 1, s.Len())
}

func TestResolveIgnoresUnknownID(t *testing.T) {
	s := testStore()

	sess, created := s.Resolve("client-chosen-id")
	assert.True(t, created)
	assert.NotEqual(t, "client-chosen-id", sess.ID)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := testStore()
	a, _ := s.Resolve("")
	b, _ := s.Resolve("")

	a.Registry.Register(context.Background(), record("jde-dev", "JDE", "h"))

	assert.Equal(t, 1, a.Registry.Len())
	assert.Equal(t, 0, b.Registry.Len())
}

func TestEndDropsSession(t *testing.T) {
	s := testStore()
	sess, _ := s.Resolve("")
	s.End(sess.ID)

	_, ok := s.Get(sess.ID)
	assert.False(t, ok)
}

func TestSessionExpires(t *testing.T) {
	s := NewStore(StoreConfig{TTL: 20 * time.Millisecond, QueriesPerMinute: 60, Burst: 1}, nil)
	sess, _ := s.Resolve("")

	time.Sleep(40 * time.Millisecond)

	_, ok := s.Get(sess.ID)
	assert.False(t, ok)
}

func TestAllowQueryHonorsBurst(t *testing.T) {
	s := testStore()
	sess, _ := s.Resolve("")

	assert.True(t, sess.AllowQuery())
	assert.True(t, sess.AllowQuery())
	assert.False(t, sess.AllowQuery())
}
