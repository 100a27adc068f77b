package eventstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSeenUnknownID(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.Seen("delivery-1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMarkSeenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.MarkSeen("delivery-1"))

	seen, err := s.Seen("delivery-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = s.Seen("delivery-2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.MarkSeen("delivery-1"))
	require.NoError(t, s.MarkSeen("delivery-1"))

	seen, err := s.Seen("delivery-1")
	require.NoError(t, err)
	assert.True(t, seen)
}
