package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"knowl/models"

	"github.com/shopspring/decimal"
)

type usdQuote struct {
	Price            *float64 `json:"price"`
	Volume24h        *float64 `json:"volume_24h"`
	PercentChange24h *float64 `json:"percent_change_24h"`
	MarketCap        *float64 `json:"market_cap"`
}

type cmcCoin struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Quote  struct {
		USD *usdQuote `json:"USD"`
	} `json:"quote"`
}

type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type listingsResponse struct {
	Status cmcStatus `json:"status"`
	Data   []cmcCoin `json:"data"`
}

type quotesResponse struct {
	Status cmcStatus          `json:"status"`
	Data   map[string]cmcCoin `json:"data"`
}

// MarketClient talks to a CoinMarketCap-compatible REST API.
type MarketClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewMarketClient(baseURL, apiKey string, timeout time.Duration) *MarketClient {
	return &MarketClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Listings returns up to limit tokens ranked by market cap.
func (c *MarketClient) Listings(ctx context.Context, limit int) ([]models.Token, error) {
	q := url.Values{}
	q.Set("start", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("convert", "USD")
	q.Set("sort", "market_cap")

	var resp listingsResponse
	if err := c.get(ctx, "/v1/cryptocurrency/listings/latest", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status.ErrorCode != 0 {
		return nil, fmt.Errorf("listings failed with code %d: %s", resp.Status.ErrorCode, resp.Status.ErrorMessage)
	}

	tokens := make([]models.Token, 0, len(resp.Data))
	for _, coin := range resp.Data {
		if coin.ID == 0 || coin.Symbol == "" || coin.Name == "" {
			continue
		}
		tokens = append(tokens, coin.toToken())
	}
	return tokens, nil
}

// Quote looks up a single token by provider id.
func (c *MarketClient) Quote(ctx context.Context, id int) (models.Token, error) {
	q := url.Values{}
	q.Set("id", strconv.Itoa(id))
	q.Set("convert", "USD")

	var resp quotesResponse
	if err := c.get(ctx, "/v2/cryptocurrency/quotes/latest", q, &resp); err != nil {
		return models.Token{}, err
	}
	if resp.Status.ErrorCode != 0 {
		return models.Token{}, fmt.Errorf("quote failed with code %d: %s", resp.Status.ErrorCode, resp.Status.ErrorMessage)
	}
	coin, ok := resp.Data[strconv.Itoa(id)]
	if !ok || coin.Symbol == "" {
		return models.Token{}, models.ErrTokenNotFound
	}
	coin.ID = id
	return coin.toToken(), nil
}

func (c *MarketClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return models.ErrProviderDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (coin cmcCoin) toToken() models.Token {
	q := coin.Quote.USD
	if q == nil {
		q = &usdQuote{}
	}
	return models.Token{
		ID:        coin.ID,
		Symbol:    coin.Symbol,
		Name:      coin.Name,
		Price:     decimalText(q.Price, -1),
		Change24h: decimalText(q.PercentChange24h, 2),
		MarketCap: decimalText(q.MarketCap, -1),
		Volume24h: decimalText(q.Volume24h, -1),
	}
}

// decimalText renders v exactly, or fixed to places when places >= 0.
// Missing values become "0".
func decimalText(v *float64, places int32) string {
	if v == nil {
		return "0"
	}
	d := decimal.NewFromFloat(*v)
	if places >= 0 {
		return d.StringFixed(places)
	}
	return d.String()
}
