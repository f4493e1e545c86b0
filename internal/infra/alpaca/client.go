package alpaca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockwatch/internal/domain"
)

const (
	headerKeyID     = "APCA-API-KEY-ID"
	headerSecretKey = "APCA-API-SECRET-KEY"
)

// Client resolves latest-quote prices from the Alpaca market-data API. One
// outbound call per invocation, no retries: a failed lookup is retried by the
// next scheduled monitoring run.
type Client struct {
	baseURL   string
	keyID     string
	secretKey string
	client    *http.Client
	logger    *zap.Logger
}

func NewClient(baseURL, keyID, secretKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (c *Client) Configured() bool {
	return c.keyID != "" && c.secretKey != ""
}

func (c *Client) LatestQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if symbol == "" {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteNotFound, Err: errors.New("empty symbol")}
	}
	if !c.Configured() {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteForbidden, Err: errors.New("api credentials not configured")}
	}

	endpoint := fmt.Sprintf("%s/v2/stocks/%s/quotes/latest", c.baseURL, url.PathEscape(providerSymbol(symbol)))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteUnknown, Err: err}
	}
	request.Header.Set(headerKeyID, c.keyID)
	request.Header.Set(headerSecretKey, c.secretKey)

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Debug("quote request failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteUnavailable, Err: err}
	}
	defer response.Body.Close()

	c.logger.Debug("quote request complete",
		zap.String("symbol", symbol),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if kind, failed := failKindForStatus(response.StatusCode); failed {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: kind, Status: response.StatusCode}
	}

	var payload latestQuoteResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteUnknown, Err: err}
	}

	// The ask price is the quote of record; a missing or zero ask means the
	// provider has no usable price for the symbol right now.
	if !payload.Quote.AskPrice.IsPositive() {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteNotFound, Err: errors.New("no usable price")}
	}

	price, _ := payload.Quote.AskPrice.Float64()
	asOf := payload.Quote.Timestamp
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	return &domain.Quote{Symbol: symbol, Price: price, AsOf: asOf}, nil
}

// providerSymbol maps a stored, provider-agnostic symbol to the shape this
// provider expects. Alpaca takes plain ETF tickers, so today this is the
// identity; any index-prefixing a future feed needs belongs here, not in
// callers.
func providerSymbol(symbol string) string {
	return symbol
}

func failKindForStatus(status int) (domain.QuoteFailKind, bool) {
	switch {
	case status >= 200 && status < 300:
		return "", false
	case status == http.StatusTooManyRequests:
		return domain.QuoteRateLimited, true
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.QuoteForbidden, true
	case status == http.StatusNotFound:
		return domain.QuoteNotFound, true
	case status >= 500:
		return domain.QuoteUnavailable, true
	default:
		return domain.QuoteUnknown, true
	}
}
