package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"knowl/metrics"
	"knowl/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	WalletHeader    = "X-Wallet-Address"
	RequestIDHeader = "X-Request-ID"
)

type ctxKey int

const (
	userKey ctxKey = iota
	requestIDKey
)

func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WalletMiddleware resolves the X-Wallet-Address header to a registered
// user and stores it in the request context.
func (h Handler) WalletMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet := r.Header.Get(WalletHeader)
		if wallet == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		user, err := h.svc.CurrentUser(r.Context(), wallet)
		if err != nil {
			h.respondWithServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id, logs one line when it
// completes and records its duration.
func RequestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			elapsed := time.Since(start)
			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
				Observe(elapsed.Seconds())

			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", elapsed),
			)
		})
	}
}

// RateLimiter keeps one token bucket per caller. Buckets live in an LRU
// so unknown callers cannot grow it without bound.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *lru.Cache
	rate    rate.Limit
	burst   int
	logger  *zap.Logger
}

const DefaultRateLimiterKeys = 10000

func NewRateLimiter(perSecond float64, burst int, logger *zap.Logger) *RateLimiter {
	return NewRateLimiterSize(perSecond, burst, DefaultRateLimiterKeys, logger)
}

func NewRateLimiterSize(perSecond float64, burst, maxKeys int, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxKeys <= 0 {
		maxKeys = DefaultRateLimiterKeys
	}
	// lru.New only fails on a non-positive size
	buckets, _ := lru.New(maxKeys)
	return &RateLimiter{
		buckets: buckets,
		rate:    rate.Limit(perSecond),
		burst:   burst,
		logger:  logger,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.buckets.Get(key); ok {
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.rate, rl.burst)
	rl.buckets.Add(key, l)
	return l
}

// Allow takes one token from key's bucket.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

// Len reports how many callers currently hold a bucket.
func (rl *RateLimiter) Len() int {
	return rl.buckets.Len()
}

// UserKey is the bucket key for a resolved user.
func UserKey(userID int) string {
	return "user:" + strconv.Itoa(userID)
}

func (rl *RateLimiter) allowRequest(w http.ResponseWriter, r *http.Request, key string) bool {
	if rl.Allow(key) {
		return true
	}
	rl.logger.Warn("rate limit exceeded",
		zap.String("key", key),
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestID(r.Context())),
	)
	respondWithError(w, http.StatusTooManyRequests, "Too many requests")
	return false
}
