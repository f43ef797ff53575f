package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"knowl/clients"
	"knowl/models"

	"github.com/stretchr/testify/require"
)

const listingsBody = `{
  "status": {"error_code": 0, "error_message": null},
  "data": [
    {"id": 1, "name": "Bitcoin", "symbol": "BTC",
     "quote": {"USD": {"price": 64000.5, "volume_24h": 25000000000, "percent_change_24h": 2.34567, "market_cap": 1250000000000}}},
    {"id": 1027, "name": "Ethereum", "symbol": "ETH", "quote": {}},
    {"id": 0, "name": "", "symbol": ""}
  ]
}`

func TestMarketClient_Listings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/cryptocurrency/listings/latest", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-CMC_PRO_API_KEY"))
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(listingsBody))
	}))
	defer srv.Close()

	c := clients.NewMarketClient(srv.URL, "test-key", time.Second)
	tokens, err := c.Listings(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	require.Equal(t, models.Token{
		ID:        1,
		Symbol:    "BTC",
		Name:      "Bitcoin",
		Price:     "64000.5",
		Change24h: "2.35",
		MarketCap: "1250000000000",
		Volume24h: "25000000000",
	}, tokens[0])
	require.Equal(t, "0", tokens[1].Price)
	require.Equal(t, "0", tokens[1].Change24h)
}

func TestMarketClient_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/cryptocurrency/quotes/latest", r.URL.Path)
		if r.URL.Query().Get("id") != "5426" {
			w.Write([]byte(`{"status": {"error_code": 0}, "data": {}}`))
			return
		}
		w.Write([]byte(`{"status": {"error_code": 0}, "data": {"5426": {"id": 5426, "name": "Solana", "symbol": "SOL",
			"quote": {"USD": {"price": 150.25, "volume_24h": 1, "percent_change_24h": -1.5, "market_cap": 2}}}}}`))
	}))
	defer srv.Close()

	c := clients.NewMarketClient(srv.URL, "test-key", time.Second)
	tok, err := c.Quote(context.Background(), 5426)
	require.NoError(t, err)
	require.Equal(t, "SOL", tok.Symbol)
	require.Equal(t, "150.25", tok.Price)
	require.Equal(t, "-1.50", tok.Change24h)

	_, err = c.Quote(context.Background(), 7)
	require.ErrorIs(t, err, models.ErrTokenNotFound)
}

func TestMarketClient_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status": {"error_code": 1008}}`))
	}))
	defer srv.Close()

	_, err := clients.NewMarketClient(srv.URL, "test-key", time.Second).Listings(context.Background(), 10)
	require.Error(t, err)

	_, err = clients.NewMarketClient(srv.URL, "", time.Second).Listings(context.Background(), 10)
	require.ErrorIs(t, err, models.ErrProviderDisabled)
}

func TestMarketClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(listingsBody))
	}))
	defer srv.Close()

	_, err := clients.NewMarketClient(srv.URL, "test-key", 20*time.Millisecond).Listings(context.Background(), 10)
	require.Error(t, err)
}

func TestChatClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer chat-key", r.Header.Get("Authorization"))

		var req clients.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, models.RoleSystem, req.Messages[0].Role)

		json.NewEncoder(w).Encode(clients.ChatCompletionResponse{
			ID: "cmpl-1",
			Choices: []clients.ChatChoice{
				{Message: models.ChatMessage{Role: models.RoleAssistant, Content: "HODL responsibly."}},
			},
		})
	}))
	defer srv.Close()

	c := clients.NewChatClient(srv.URL, "chat-key", "test-model", time.Second)
	reply, err := c.Complete(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: "preamble"},
		{Role: models.RoleUser, Content: "what is a blockchain?"},
	})
	require.NoError(t, err)
	require.Equal(t, "HODL responsibly.", reply)
}

func TestChatClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":"x","choices":[]}`))
			},
		},
		{
			name: "garbage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := clients.NewChatClient(srv.URL, "chat-key", "m", time.Second)
			_, err := c.Complete(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}})
			require.Error(t, err)
		})
	}
}
