package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"golang-stock-watchlist/internal/monitor/config"
	"golang-stock-watchlist/internal/monitor/dto"
	"golang-stock-watchlist/pkg/logger"
	"golang-stock-watchlist/pkg/utils"
)

type screenerRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewScreenerRepository creates a PriceRepository that scrapes the current
// price from a screener.in company page. Used as an alternative to the Yahoo
// chart API for NSE/BSE listings.
func NewScreenerRepository(cfg *config.Config, log *logger.Logger) PriceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Screener.MaxRequestPerMinute)
	return &screenerRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *screenerRepository) Quote(ctx context.Context, symbol string) (*dto.PriceQuote, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// screener.in keys company pages by the exchange ticker without the
	// Yahoo suffix.
	code := strings.TrimSuffix(strings.TrimSuffix(symbol, ".NS"), ".BO")
	url := fmt.Sprintf("%s/company/%s/", r.cfg.Screener.BaseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to reach screener.in", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// The top ratio list carries "Current Price" as "₹ 1,234".
	var raw string
	doc.Find("ul#top-ratios li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		name := strings.TrimSpace(li.Find("span.name").Text())
		if strings.EqualFold(name, "Current Price") {
			raw = li.Find("span.number").First().Text()
			return false
		}
		return true
	})
	if raw == "" {
		// Older page layout: the bold header span holds the price.
		raw = doc.Find("div.font-size-18.strong span").First().Text()
	}

	cleaned := strings.TrimSpace(strings.NewReplacer("₹", "", ",", "").Replace(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: no price on page for %s", ErrSymbolNotFound, symbol)
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable price %q for %s", ErrSourceUnavailable, raw, symbol)
	}

	return &dto.PriceQuote{
		Symbol:     symbol,
		Price:      price,
		ObservedAt: utils.TimeNowIST(),
	}, nil
}
