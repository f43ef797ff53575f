package handlers

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(h Handler, limiter *RateLimiter, logger *zap.Logger) *mux.Router {
	h.limiter = limiter
	r := mux.NewRouter()
	r.Use(RequestLogger(logger))

	r.HandleFunc("/api/auth", h.AuthHandler).Methods("POST")
	r.HandleFunc("/api/auth", h.WalletMiddleware(h.CurrentUserHandler)).Methods("GET")
	r.HandleFunc("/api/auth/challenge", h.ChallengeHandler).Methods("POST")
	r.HandleFunc("/api/auth/verify", h.VerifyHandler).Methods("POST")

	r.HandleFunc("/api/users/{id}", h.WalletMiddleware(h.UpdateUserHandler)).Methods("PUT")
	r.HandleFunc("/api/users/{userId}/analysis", h.ListAnalysesHandler).Methods("GET")
	r.HandleFunc("/api/users/{userId}/ledger", h.LedgerHandler).Methods("GET")

	// search must be registered before {id}
	r.HandleFunc("/api/tokens", h.ListTokensHandler).Methods("GET")
	r.HandleFunc("/api/tokens/search", h.SearchTokensHandler).Methods("GET")
	r.HandleFunc("/api/tokens/{id}", h.GetTokenHandler).Methods("GET")

	r.HandleFunc("/api/analysis", h.CreateAnalysisHandler).Methods("POST")
	r.HandleFunc("/api/chat", h.ChatHandler).Methods("POST")

	r.HandleFunc("/healthz", h.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
