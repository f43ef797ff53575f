package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"knowl/apperrors"
	"knowl/models"
	"knowl/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Options struct {
	// RequireSignature disables plain wallet login in favour of the
	// signed challenge flow.
	RequireSignature bool
}

type Handler struct {
	svc      service.Service
	logger   *zap.Logger
	validate *validator.Validate
	opts     Options
	limiter  *RateLimiter
}

func NewHandler(svc service.Service, logger *zap.Logger, opts Options) Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Handler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
		opts:     opts,
	}
}

type AuthRequest struct {
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type AnalysisRequest struct {
	UserID  int                 `json:"userId"`
	TokenID int                 `json:"tokenId" validate:"required,gt=0"`
	Type    models.AnalysisType `json:"type" validate:"required"`
	Data    json.RawMessage     `json:"data"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  int    `json:"userId" validate:"required,gt=0"`
}

type ChallengeRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type VerifyRequest struct {
	Challenge string `json:"challenge" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Username  string `json:"username"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func (h Handler) AuthHandler(w http.ResponseWriter, r *http.Request) {
	if h.opts.RequireSignature {
		respondWithError(w, http.StatusUnauthorized, "Signature required, use /api/auth/challenge")
		return
	}
	var req AuthRequest
	if !h.decode(w, r, &req, "Wallet address is required") {
		return
	}
	user, err := h.svc.Authenticate(r.Context(), req.WalletAddress, req.Username)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (h Handler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (h Handler) ChallengeHandler(w http.ResponseWriter, r *http.Request) {
	var req ChallengeRequest
	if !h.decode(w, r, &req, "Wallet address is required") {
		return
	}
	ch, err := h.svc.IssueChallenge(r.Context(), req.WalletAddress)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ch)
}

func (h Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !h.decode(w, r, &req, "Challenge and signature are required") {
		return
	}
	user, err := h.svc.VerifyChallenge(r.Context(), req.Challenge, req.Signature, req.Username)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (h Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id != caller.ID {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req UpdateUserRequest
	if !h.decode(w, r, &req, "Invalid username") {
		return
	}
	user, err := h.svc.UpdateUsername(r.Context(), id, req.Username)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (h Handler) ListTokensHandler(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.svc.ListTokens(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tokens)
}

func (h Handler) SearchTokensHandler(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.svc.SearchTokens(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tokens)
}

func (h Handler) GetTokenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Token not found")
		return
	}
	token, err := h.svc.GetToken(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

func (h Handler) CreateAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if !h.decode(w, r, &req, "Invalid analysis data") {
		return
	}
	res, err := h.svc.RequestAnalysis(r.Context(), service.AnalysisRequest{
		UserID:         req.UserID,
		TokenID:        req.TokenID,
		Type:           req.Type,
		Data:           req.Data,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h Handler) ListAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	analyses, err := h.svc.ListAnalyses(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, analyses)
}

func (h Handler) LedgerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	events, err := h.svc.ListPointEvents(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, events)
}

func (h Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decode(w, r, &req, "Missing message or userId") {
		return
	}
	// The wallet header is optional; when sent it must belong to userId.
	if wallet := r.Header.Get(WalletHeader); wallet != "" {
		caller, err := h.svc.CurrentUser(r.Context(), wallet)
		if err != nil || caller.ID != req.UserID {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	}
	// Buckets are keyed by the user being credited, so every spelling of
	// the wallet header shares one.
	if h.limiter != nil && !h.limiter.allowRequest(w, r, UserKey(req.UserID)) {
		return
	}
	res, err := h.svc.Converse(r.Context(), req.UserID, req.Message)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst and validates it, answering 400 with
// message on failure.
func (h Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, message string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, message)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, message)
		return false
	}
	return true
}

func (h Handler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) && svcErr.Category != apperrors.CategoryGeneral {
		if svcErr.StatusCode() >= http.StatusInternalServerError {
			h.requestLogger(r).Warn("request failed", zap.Error(err))
		}
		respondWithError(w, svcErr.StatusCode(), svcErr.Message)
		return
	}
	h.requestLogger(r).Error("unexpected error", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
}

func (h Handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", RequestID(r.Context())))
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
