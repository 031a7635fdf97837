package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-watchlist/internal/api/config"
	"golang-stock-watchlist/pkg/logger"
)

const yahooSearchFixture = `{
	"quotes": [
		{"symbol": "TATASTEEL.BO", "shortname": "Tata Steel Limited", "exchDisp": "Bombay"},
		{"symbol": "TATASTEEL.NS", "shortname": "Tata Steel Limited", "exchDisp": "NSE"},
		{"symbol": "TTST", "longname": "Tata Steel GDR", "exchDisp": "OTC"},
		{"symbol": "", "shortname": "junk entry without symbol"}
	]
}`

func newSearchRepo(t *testing.T, baseURL string) SymbolSearchRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.SymbolSearch = config.SymbolSearch{
		BaseURL:             baseURL,
		MaxResults:          5,
		MaxRequestPerMinute: 600,
		CacheTTL:            time.Minute,
	}
	return NewSymbolSearchRepository(cfg, log)
}

func TestSymbolSearch_RanksNSEFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "tata steel", r.URL.Query().Get("q"))
		w.Write([]byte(yahooSearchFixture))
	}))
	defer server.Close()

	repo := newSearchRepo(t, server.URL)
	results, err := repo.Search(context.Background(), "Tata Steel")
	require.NoError(t, err)
	require.Len(t, results, 3, "entries without a symbol are dropped")

	assert.Equal(t, "TATASTEEL.NS", results[0].Symbol)
	assert.Equal(t, "TATASTEEL.BO", results[1].Symbol)
	assert.Equal(t, "TTST", results[2].Symbol)
	assert.Equal(t, "Tata Steel Limited", results[0].DisplayName)
	assert.Equal(t, "Tata Steel GDR", results[2].DisplayName, "falls back to longname")
}

func TestSymbolSearch_CachesByNormalizedQuery(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(yahooSearchFixture))
	}))
	defer server.Close()

	repo := newSearchRepo(t, server.URL)
	ctx := context.Background()

	first, err := repo.Search(ctx, "tata steel")
	require.NoError(t, err)

	// Different casing and padding hit the same cache entry.
	second, err := repo.Search(ctx, "  TATA Steel ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second lookup must be served from cache")
}

func TestSymbolSearch_EmptyQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blank queries must not reach the upstream")
	}))
	defer server.Close()

	repo := newSearchRepo(t, server.URL)
	results, err := repo.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestSymbolSearch_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	repo := newSearchRepo(t, server.URL)
	_, err := repo.Search(context.Background(), "tata steel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
