package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"knowl/clients"
	"knowl/handlers"
	"knowl/models"
	"knowl/repository"
	"knowl/service"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cmcListings = `{
  "status": {"error_code": 0},
  "data": [
    {"id": 1, "name": "Bitcoin", "symbol": "BTC",
     "quote": {"USD": {"price": 64000.5, "volume_24h": 25000000000, "percent_change_24h": 1.234, "market_cap": 1250000000000}}},
    {"id": 1027, "name": "Ethereum", "symbol": "ETH",
     "quote": {"USD": {"price": 3100.25, "volume_24h": 12000000000, "percent_change_24h": -0.5, "market_cap": 370000000000}}}
  ]
}`

// newUpstream fakes both the market and the chat provider.
func newUpstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/cryptocurrency/listings/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cmcListings))
	})
	mux.HandleFunc("/v2/cryptocurrency/quotes/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": {"error_code": 0}, "data": {}}`))
	})
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req clients.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(clients.ChatCompletionResponse{
			Choices: []clients.ChatChoice{{Message: models.ChatMessage{
				Role:    models.RoleAssistant,
				Content: "echo: " + req.Messages[len(req.Messages)-1].Content,
			}}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupTestServer(t *testing.T) (*httptest.Server, *repository.MemoryRepository) {
	upstream := newUpstream(t)
	logger := zap.NewNop()

	repo, err := repository.NewMemoryRepository(100)
	require.NoError(t, err)

	market := clients.NewMarketClient(upstream.URL, "cmc-key", time.Second)
	chat := clients.NewChatClient(upstream.URL, "chat-key", "test-model", time.Second)
	svc := service.NewService(repo, market, chat, service.Options{JWTSecret: "secret"}, logger)
	h := handlers.NewHandler(svc, logger, handlers.Options{})

	ts := httptest.NewServer(handlers.NewRouter(h, handlers.NewRateLimiter(1000, 1000, logger), logger))
	t.Cleanup(ts.Close)
	return ts, repo
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload interface{}, out interface{}) int {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func TestE2E_LearnAndEarn(t *testing.T) {
	type args struct {
		wallet   string
		username string
		analyses []models.AnalysisType
		chats    int
	}
	type expected struct {
		points int
		events int
	}
	tests := []struct {
		name     string
		args     args
		expected expected
	}{
		{
			name: "One analysis of each tier",
			args: args{
				wallet:   "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
				username: "alice",
				analyses: []models.AnalysisType{models.AnalysisBasic, models.AnalysisAdvanced, models.AnalysisPremium},
			},
			expected: expected{points: 60, events: 3},
		},
		{
			name: "Chat only",
			args: args{
				wallet:   "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				username: "bob",
				chats:    3,
			},
			expected: expected{points: 3, events: 3},
		},
		{
			name: "Mixed activity on a bech32 wallet",
			args: args{
				wallet:   "cosmos1qpzry9x8gf2tvdw0s3jn54khce6mua7l",
				username: "carol",
				analyses: []models.AnalysisType{models.AnalysisBasic, models.AnalysisBasic},
				chats:    2,
			},
			expected: expected{points: 22, events: 4},
		},
	}

	ts, _ := setupTestServer(t)
	client := ts.Client()

	var tokens []models.Token
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, ts.URL+"/api/tokens", nil, &tokens))
	require.Len(t, tokens, 2)
	require.Equal(t, "64000.5", tokens[0].Price)
	require.Equal(t, "1.23", tokens[0].Change24h)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user models.User
			status := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth", map[string]string{
				"walletAddress": tt.args.wallet,
				"username":      tt.args.username,
			}, &user)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tt.args.username, user.Username)

			for _, typ := range tt.args.analyses {
				var res service.AnalysisResult
				status := doJSON(t, client, http.MethodPost, ts.URL+"/api/analysis", map[string]interface{}{
					"userId":  user.ID,
					"tokenId": 1027,
					"type":    typ,
					"data":    map[string]string{"timestamp": "2024-01-01T00:00:00Z"},
				}, &res)
				require.Equal(t, http.StatusOK, status)
			}

			for i := 0; i < tt.args.chats; i++ {
				var res service.ChatResult
				msg := fmt.Sprintf("question %d", i)
				status := doJSON(t, client, http.MethodPost, ts.URL+"/api/chat", map[string]interface{}{
					"userId":  user.ID,
					"message": msg,
				}, &res)
				require.Equal(t, http.StatusOK, status)
				require.Equal(t, "echo: "+msg, res.Reply)
			}

			req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth", nil)
			require.NoError(t, err)
			req.Header.Set(handlers.WalletHeader, tt.args.wallet)
			resp, err := client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var me models.User
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
			require.Equal(t, tt.expected.points, me.Points)

			var analyses []models.Analysis
			status = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/users/%d/analysis", ts.URL, user.ID), nil, &analyses)
			require.Equal(t, http.StatusOK, status)
			require.Len(t, analyses, len(tt.args.analyses))

			var events []models.PointEvent
			status = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/users/%d/ledger", ts.URL, user.ID), nil, &events)
			require.Equal(t, http.StatusOK, status)
			require.Len(t, events, tt.expected.events)
			sum := 0
			for _, ev := range events {
				sum += ev.Points
			}
			require.Equal(t, me.Points, sum)
		})
	}
}

func TestE2E_ConcurrentAnalyses(t *testing.T) {
	ts, repo := setupTestServer(t)
	client := ts.Client()

	var tokens []models.Token
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, ts.URL+"/api/tokens", nil, &tokens))

	var user models.User
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodPost, ts.URL+"/api/auth", map[string]string{
		"walletAddress": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	}, &user))

	const n = 25
	var wg sync.WaitGroup
	statuses := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _ := json.Marshal(map[string]interface{}{"userId": user.ID, "tokenId": 1, "type": "basic"})
			resp, err := client.Post(ts.URL+"/api/analysis", "application/json", bytes.NewReader(data))
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)
	for s := range statuses {
		require.Equal(t, http.StatusOK, s)
	}

	got, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, n*10, got.Points)

	analyses, err := repo.ListAnalysesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, analyses, n)
}

func TestE2E_SignedLogin(t *testing.T) {
	ts, _ := setupTestServer(t)
	client := ts.Client()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	var ch service.Challenge
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/challenge",
		map[string]string{"walletAddress": wallet}, &ch))

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(ch.Message), ch.Message)
	sig, err := crypto.Sign(crypto.Keccak256Hash([]byte(prefixed)).Bytes(), key)
	require.NoError(t, err)

	var user models.User
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/verify", map[string]string{
		"challenge": ch.Token,
		"signature": "0x" + hex.EncodeToString(sig),
		"username":  "dave",
	}, &user))
	require.Equal(t, "dave", user.Username)
	require.Equal(t, wallet, user.WalletAddress)
}
