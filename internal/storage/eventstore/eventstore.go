// Package eventstore persists handled webhook delivery IDs so that GitHub
// redeliveries do not produce duplicate comments.
package eventstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

const deliveryPrefix = "dlv:"

// Store is a pebble-backed set of handled delivery IDs.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store at the given path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open event store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Seen reports whether the delivery ID has already been handled.
func (s *Store) Seen(id string) (bool, error) {
	_, closer, err := s.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("event store read failed: %w", err)
	}
	closer.Close()
	return true, nil
}

// MarkSeen records the delivery ID. The stored value is the handling time,
// useful when inspecting the store by hand.
func (s *Store) MarkSeen(id string) error {
	value := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := s.db.Set(key(id), value, pebble.Sync); err != nil {
		return fmt.Errorf("event store write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(id string) []byte {
	return []byte(deliveryPrefix + id)
}
