package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-watchlist/internal/monitor/config"
	"golang-stock-watchlist/pkg/logger"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		YahooFinance: config.YahooFinance{
			BaseURL:             baseURL,
			MaxRequestPerMinute: 600,
		},
		Screener: config.Screener{
			BaseURL:             baseURL,
			MaxRequestPerMinute: 600,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestYahooFinanceQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/TATASTEEL.NS", r.URL.Path)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"symbol":"TATASTEEL.NS","regularMarketPrice":842.35,"regularMarketTime":1717059600}}],"error":null}}`)
	}))
	defer server.Close()

	repo := NewYahooFinanceRepository(testConfig(server.URL), testLogger(t))
	quote, err := repo.Quote(context.Background(), "TATASTEEL.NS")
	require.NoError(t, err)
	assert.Equal(t, "TATASTEEL.NS", quote.Symbol)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("842.35")))
	assert.Equal(t, int64(1717059600), quote.ObservedAt.Unix())
}

func TestYahooFinanceQuote_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	repo := NewYahooFinanceRepository(testConfig(server.URL), testLogger(t))
	_, err := repo.Quote(context.Background(), "NOPE.NS")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestYahooFinanceQuote_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer server.Close()

	repo := NewYahooFinanceRepository(testConfig(server.URL), testLogger(t))
	_, err := repo.Quote(context.Background(), "NOPE.NS")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestYahooFinanceQuote_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	repo := NewYahooFinanceRepository(testConfig(server.URL), testLogger(t))
	_, err := repo.Quote(context.Background(), "TATASTEEL.NS")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

const screenerPageFixture = `<!doctype html>
<html><body>
<ul id="top-ratios">
  <li><span class="name">Market Cap</span><span class="number">1,05,000</span></li>
  <li><span class="name">Current Price</span><span class="number">1,234.55</span></li>
  <li><span class="name">High / Low</span><span class="number">1,400</span></li>
</ul>
</body></html>`

func TestScreenerQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/TATASTEEL/", r.URL.Path)
		fmt.Fprint(w, screenerPageFixture)
	}))
	defer server.Close()

	repo := NewScreenerRepository(testConfig(server.URL), testLogger(t))
	quote, err := repo.Quote(context.Background(), "TATASTEEL.NS")
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("1234.55")))
	assert.False(t, quote.ObservedAt.IsZero())
}

func TestScreenerQuote_FallbackHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="font-size-18 strong"><span>₹ 98.40</span></div></body></html>`)
	}))
	defer server.Close()

	repo := NewScreenerRepository(testConfig(server.URL), testLogger(t))
	quote, err := repo.Quote(context.Background(), "IDEA.NS")
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("98.40")))
}

func TestScreenerQuote_NoPriceOnPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))
	defer server.Close()

	repo := NewScreenerRepository(testConfig(server.URL), testLogger(t))
	_, err := repo.Quote(context.Background(), "TATASTEEL.NS")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}
