package feedcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-10-05"

// --- fakes ---

type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	pingErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Ping(context.Context) error { return s.pingErr }

type countingFeed struct {
	calls   int
	objects []domain.NearEarthObject
	err     error
}

func (f *countingFeed) FetchFeed(context.Context, string) ([]domain.NearEarthObject, error) {
	f.calls++
	return f.objects, f.err
}

func sampleObjects() []domain.NearEarthObject {
	return []domain.NearEarthObject{
		{
			ID:             "2025AB",
			Name:           "2025-AB",
			DiameterMeters: 320,
			CloseApproach:  &domain.CloseApproach{SpeedKmPerSec: 21, MissDistanceKm: 4.5e6},
		},
		{ID: "3837644", Name: "(2019 AZ3)", DiameterMeters: 49.5},
	}
}

func newCache(inner domain.FeedSource, store Store) *CachedFeed {
	return New(inner, store, time.Hour, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- tests ---

func TestCachedFeed_MissThenHit(t *testing.T) {
	inner := &countingFeed{objects: sampleObjects()}
	store := newMemStore()
	cached := newCache(inner, store)

	first, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)

	second, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "second call should be served from the store")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached objects differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, time.Hour, store.ttls[Key(testDate)])
}

func TestCachedFeed_EmptyResultIsCached(t *testing.T) {
	inner := &countingFeed{objects: []domain.NearEarthObject{}}
	cached := newCache(inner, newMemStore())

	_, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)
	objects, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)

	assert.NotNil(t, objects)
	assert.Empty(t, objects)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFeed_UpstreamErrorNotCached(t *testing.T) {
	inner := &countingFeed{err: domain.ErrFeedUnavailable}
	store := newMemStore()
	cached := newCache(inner, store)

	_, err := cached.FetchFeed(context.Background(), testDate)
	require.ErrorIs(t, err, domain.ErrFeedUnavailable)
	assert.Empty(t, store.data)
}

func TestCachedFeed_StoreReadErrorFallsBack(t *testing.T) {
	inner := &countingFeed{objects: sampleObjects()}
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	cached := newCache(inner, store)

	objects, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)
	assert.Len(t, objects, 2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFeed_StoreWriteErrorIgnored(t *testing.T) {
	inner := &countingFeed{objects: sampleObjects()}
	store := newMemStore()
	store.setErr = errors.New("READONLY")
	cached := newCache(inner, store)

	objects, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestCachedFeed_CorruptEntryRefetched(t *testing.T) {
	inner := &countingFeed{objects: sampleObjects()}
	store := newMemStore()
	store.data[Key(testDate)] = "{not json"
	cached := newCache(inner, store)

	objects, err := cached.FetchFeed(context.Background(), testDate)
	require.NoError(t, err)
	assert.Len(t, objects, 2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFeed_CheckReadiness(t *testing.T) {
	store := newMemStore()
	cached := newCache(&countingFeed{}, store)
	require.NoError(t, cached.CheckReadiness(context.Background()))

	store.pingErr = errors.New("down")
	assert.Error(t, cached.CheckReadiness(context.Background()))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "neo:feed:2025-10-05", Key("2025-10-05"))
}
