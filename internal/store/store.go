// Package store provides the settings storage interface and its SQLite and
// in-memory implementations.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for a key that was never written.
var ErrNotFound = errors.New("setting not found")

// Entry is one stored setting.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is a string-keyed configuration store with change notification.
type Settings interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key and notifies subscribers.
	Put(ctx context.Context, key, value string) error

	// Subscribe registers fn to be called with the key after every Put.
	// The returned func removes the subscription.
	Subscribe(fn func(key string)) (unsubscribe func())
}

// GetOr returns the value for key, or def when the key is missing.
func GetOr(ctx context.Context, s Settings, key, def string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return v, err
}

// subscribers fans Put notifications out to registered callbacks.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(string)
}

func (s *subscribers) add(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

// notify calls the callbacks outside the lock so they may Put again.
func (s *subscribers) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
