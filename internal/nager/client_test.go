package nager_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/planner-service/internal/config"
	"github.com/spec-kit/planner-service/internal/nager"
	"github.com/spec-kit/planner-service/internal/persistence"
)

func newTestClient(baseURL string) *nager.Client {
	cfg := config.NagerConfig{BaseURL: baseURL, TimeoutSeconds: 2}
	return nager.NewClient(cfg, nil, zap.NewNop())
}

// stubCache is an in-memory nager.Cache recording every write.
type stubCache struct {
	entries map[string][]byte
	writes  int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (s *stubCache) GetBytes(_ context.Context, key string) ([]byte, bool) {
	b, ok := s.entries[key]
	return b, ok
}

func (s *stubCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) {
	s.entries[key] = value
	s.writes++
}

func newCachedClient(baseURL string, cache nager.Cache) *nager.Client {
	cfg := config.NagerConfig{BaseURL: baseURL, TimeoutSeconds: 2, CacheTTLMinutes: 5}
	return nager.NewClient(cfg, cache, zap.NewNop())
}

func TestPublicHolidays_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"date":"2025-01-01","localName":"Anul Nou","name":"New Year's Day"},
			{"date":"2025-12-25","localName":"Crăciunul","name":"Christmas Day"}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)

	assert.NoError(t, err)
	assert.Equal(t, "/PublicHolidays/2025/RO", gotPath)
	assert.Len(t, holidays, 2)
	assert.Equal(t, "Anul Nou", holidays[0].LocalName)
}

func TestPublicHolidays_EmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)

	assert.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestPublicHolidays_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.PublicHolidays(context.Background(), "RO", 2025)
	assert.Error(t, err)
}

func TestPublicHolidays_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.PublicHolidays(context.Background(), "RO", 2025)
	assert.Error(t, err)
}

func TestPublicHolidays_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.PublicHolidays(context.Background(), "RO", 2025)
	assert.Error(t, err)
}

func TestPublicHolidays_CacheHitSkipsUpstream(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := newStubCache()
	cache.entries["nager:holidays:RO:2025"] = []byte(`[{"date":"2025-01-01","localName":"Anul Nou","name":"New Year's Day"}]`)

	client := newCachedClient(srv.URL, cache)
	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)

	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Anul Nou", holidays[0].LocalName)
	assert.Zero(t, hits)
}

func TestPublicHolidays_CacheMissStoresPayload(t *testing.T) {
	hits := 0
	payload := `[{"date":"2025-12-25","localName":"Crăciunul","name":"Christmas Day"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	cache := newStubCache()
	client := newCachedClient(srv.URL, cache)

	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, 1, hits)
	assert.Equal(t, []byte(payload), cache.entries["nager:holidays:RO:2025"])

	// The stored payload now serves the next call.
	holidays, err = client.PublicHolidays(context.Background(), "RO", 2025)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, 1, hits)
}

func TestPublicHolidays_UpstreamFailureNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cache := newStubCache()
	client := newCachedClient(srv.URL, cache)

	_, err := client.PublicHolidays(context.Background(), "RO", 2025)
	assert.Error(t, err)
	assert.Zero(t, cache.writes)
	assert.Empty(t, cache.entries)
}

func TestPublicHolidays_BrokenRedisDegradesToMiss(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2025-01-01","localName":"Anul Nou","name":"New Year's Day"}]`))
	}))
	defer srv.Close()

	// Nothing listens on port 1, so every cache command errors.
	broken := persistence.NewRedis(config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	defer broken.Close()

	client := newCachedClient(srv.URL, broken)
	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)

	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, 1, hits)
}

func TestPublicHolidays_CorruptCacheEntryRefetches(t *testing.T) {
	hits := 0
	payload := `[{"date":"2025-01-01","localName":"Anul Nou","name":"New Year's Day"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	cache := newStubCache()
	cache.entries["nager:holidays:RO:2025"] = []byte("not json at all")

	client := newCachedClient(srv.URL, cache)
	holidays, err := client.PublicHolidays(context.Background(), "RO", 2025)

	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, 1, hits)
	assert.Equal(t, []byte(payload), cache.entries["nager:holidays:RO:2025"])
}
