package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/career-coach/internal/platform/resilience"
)

var errNilLoader = errors.New("cache loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache. A zero or negative ttl keeps entries until
// they are deleted.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	flight  resilience.Group[V]
	now     func() time.Time

	// epoch advances on every delete; loads started under an older epoch are
	// returned to their callers but never stored.
	epoch uint64
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && s.expired(current) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

// setIfEpoch stores value only when no delete happened since epoch was read.
func (s *Store[V]) setIfEpoch(key string, value V, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.entries[key] = s.newEntry(value)
	return true
}

func (s *Store[V]) newEntry(value V) entry[V] {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store[V]) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.epoch++
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix and returns how many were removed.
func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or loads it once, even when many
// callers miss concurrently. Loader errors are not cached. A load that overlaps
// a delete is not stored, and callers arriving after the delete start a new load.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	epoch := s.currentEpoch()
	flightKey := key + "@" + strconv.FormatUint(epoch, 10)
	value, err, _ := s.flight.Do(ctx, flightKey, func(loadCtx context.Context) (V, error) {
		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}
		loaded, err := loader(loadCtx)
		if err != nil {
			return loaded, err
		}
		s.setIfEpoch(key, loaded, epoch)
		return loaded, nil
	})
	return value, err
}

func (s *Store[V]) expired(e entry[V]) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}
