package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"golang-stock-watchlist/internal/api/config"
	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/pkg/logger"
)

// SymbolSearchRepository resolves free-text queries to instrument symbols.
type SymbolSearchRepository interface {
	Search(ctx context.Context, query string) ([]dto.SymbolSearchResult, error)
}

type symbolSearchRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	resultCache    *cache.Cache
}

// NewSymbolSearchRepository creates a Yahoo Finance-backed search repository.
// Results are cached so repeated autocomplete keystrokes do not re-hit the
// upstream endpoint.
func NewSymbolSearchRepository(cfg *config.Config, log *logger.Logger) SymbolSearchRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.SymbolSearch.MaxRequestPerMinute)
	return &symbolSearchRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		resultCache:    cache.New(cfg.SymbolSearch.CacheTTL, 2*cfg.SymbolSearch.CacheTTL),
	}
}

type yahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		ExchDisp  string `json:"exchDisp"`
	} `json:"quotes"`
}

func (r *symbolSearchRepository) Search(ctx context.Context, query string) ([]dto.SymbolSearchResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil, nil
	}

	if cached, ok := r.resultCache.Get(normalized); ok {
		return cached.([]dto.SymbolSearchResult), nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%d&newsCount=0&enableFuzzyQuery=false&quotesQueryId=tss_match_phrase_query",
		r.cfg.SymbolSearch.BaseURL, url.QueryEscape(normalized), r.cfg.SymbolSearch.MaxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Symbol search request failed", logger.ErrorField(err), logger.StringField("query", normalized))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbol search upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var searchResp yahooSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, err
	}

	results := make([]dto.SymbolSearchResult, 0, len(searchResp.Quotes))
	for _, quote := range searchResp.Quotes {
		if quote.Symbol == "" {
			continue
		}
		name := quote.ShortName
		if name == "" {
			name = quote.LongName
		}
		results = append(results, dto.SymbolSearchResult{
			Symbol:      quote.Symbol,
			DisplayName: name,
			Exchange:    quote.ExchDisp,
		})
	}

	// NSE listings first, then BSE, matching how watchers pick symbols for
	// Indian instruments.
	sort.SliceStable(results, func(i, j int) bool {
		return exchangeRank(results[i].Symbol) < exchangeRank(results[j].Symbol)
	})

	r.resultCache.Set(normalized, results, cache.DefaultExpiration)
	return results, nil
}

func exchangeRank(symbol string) int {
	switch {
	case strings.HasSuffix(symbol, ".NS"):
		return 0
	case strings.HasSuffix(symbol, ".BO"):
		return 1
	default:
		return 2
	}
}
