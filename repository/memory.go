package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"knowl/apperrors"
	"knowl/metrics"
	"knowl/models"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru"
)

const DefaultTokenCacheSize = 10000

type idempotencyKey struct {
	userID int
	key    string
}

// MemoryRepository is the process-lifetime ledger. One mutex serializes
// every read-modify-write so awards are never lost and an analysis is
// never stored without its points.
type MemoryRepository struct {
	mu sync.Mutex

	users          map[int]models.User
	userByWallet   map[string]int
	userByUsername map[string]int

	tokens *lru.Cache

	analyses       []models.Analysis
	analysesByUser map[int][]int
	analysisByKey  map[idempotencyKey]int

	events       []models.PointEvent
	eventsByUser map[int][]int

	nextUserID       int
	nextAnalysisID   int
	nextPointEventID int

	validate *validator.Validate
	now      func() time.Time
}

func NewMemoryRepository(tokenCacheSize int) (*MemoryRepository, error) {
	if tokenCacheSize <= 0 {
		tokenCacheSize = DefaultTokenCacheSize
	}
	cache, err := lru.New(tokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create token cache: %w", err)
	}
	return &MemoryRepository{
		users:            make(map[int]models.User),
		userByWallet:     make(map[string]int),
		userByUsername:   make(map[string]int),
		tokens:           cache,
		analysesByUser:   make(map[int][]int),
		analysisByKey:    make(map[idempotencyKey]int),
		eventsByUser:     make(map[int][]int),
		nextUserID:       1,
		nextAnalysisID:   1,
		nextPointEventID: 1,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		now:              time.Now,
	}, nil
}

func (r *MemoryRepository) CreateUser(
	ctx context.Context,
	username, walletAddress string,
) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.userByWallet[walletAddress]; ok {
		return models.User{}, apperrors.ConflictError(models.ErrWalletTaken, "Wallet already registered")
	}
	if _, ok := r.userByUsername[username]; ok {
		return models.User{}, apperrors.ConflictError(models.ErrUsernameTaken, "Username already taken")
	}

	u := models.User{
		ID:            r.nextUserID,
		Username:      username,
		WalletAddress: walletAddress,
	}
	r.nextUserID++
	r.users[u.ID] = u
	r.userByWallet[walletAddress] = u.ID
	r.userByUsername[username] = u.ID
	return u, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, userNotFound()
	}
	return u, nil
}

func (r *MemoryRepository) GetUserByWallet(
	ctx context.Context,
	walletAddress string,
) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.userByWallet[walletAddress]
	if !ok {
		return models.User{}, userNotFound()
	}
	return r.users[id], nil
}

func (r *MemoryRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.userByUsername[username]
	return ok, nil
}

func (r *MemoryRepository) UpdateUsername(
	ctx context.Context,
	id int,
	username string,
) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, userNotFound()
	}
	if owner, taken := r.userByUsername[username]; taken {
		if owner == id {
			return u, nil
		}
		return models.User{}, apperrors.ConflictError(models.ErrUsernameTaken, "Username already taken")
	}

	delete(r.userByUsername, u.Username)
	u.Username = username
	r.users[id] = u
	r.userByUsername[username] = id
	return u, nil
}

func (r *MemoryRepository) AwardPoints(
	ctx context.Context,
	id, delta int,
	source models.PointSource,
) (models.User, error) {
	if delta < 0 {
		return models.User{}, apperrors.InvalidRequestError(models.ErrNegativeAward, "Invalid point award")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return models.User{}, userNotFound()
	}
	return r.awardLocked(id, delta, source, 0), nil
}

// awardLocked must be called with r.mu held and a known user id.
func (r *MemoryRepository) awardLocked(id, delta int, source models.PointSource, analysisID int) models.User {
	u := r.users[id]
	u.Points += delta
	r.users[id] = u

	ev := models.PointEvent{
		ID:         r.nextPointEventID,
		UserID:     id,
		Source:     source,
		AnalysisID: analysisID,
		Points:     delta,
		CreatedAt:  r.now().UTC(),
	}
	r.nextPointEventID++
	r.events = append(r.events, ev)
	r.eventsByUser[id] = append(r.eventsByUser[id], len(r.events)-1)
	metrics.PointsAwarded.WithLabelValues(string(source)).Add(float64(delta))
	return u
}

func (r *MemoryRepository) UpsertToken(ctx context.Context, token models.Token) error {
	if err := r.validate.Struct(token); err != nil {
		return apperrors.InvalidRequestError(err, "Invalid token data")
	}
	r.tokens.Add(token.ID, token)
	return nil
}

func (r *MemoryRepository) GetToken(ctx context.Context, id int) (models.Token, error) {
	v, ok := r.tokens.Get(id)
	if !ok {
		return models.Token{}, apperrors.NotFoundError(models.ErrTokenNotFound, "Token not found")
	}
	return v.(models.Token), nil
}

func (r *MemoryRepository) ListTokens(ctx context.Context) ([]models.Token, error) {
	return r.filterTokens(func(models.Token) bool { return true }), nil
}

func (r *MemoryRepository) SearchTokens(ctx context.Context, query string) ([]models.Token, error) {
	q := strings.TrimSpace(query)
	return r.filterTokens(func(t models.Token) bool {
		return t.Matches(q)
	}), nil
}

func (r *MemoryRepository) filterTokens(keep func(models.Token) bool) []models.Token {
	out := make([]models.Token, 0, r.tokens.Len())
	for _, k := range r.tokens.Keys() {
		v, ok := r.tokens.Peek(k)
		if !ok {
			continue
		}
		if t := v.(models.Token); keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AppendAnalysis stores the record and credits record.Points to its user in
// the same critical section. The user and token must exist unless the
// idempotency key was already recorded.
func (r *MemoryRepository) AppendAnalysis(
	ctx context.Context,
	record models.Analysis,
) (models.Analysis, models.User, error) {
	if record.Points < 0 {
		return models.Analysis{}, models.User{}, apperrors.InvalidRequestError(models.ErrNegativeAward, "Invalid point award")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[record.UserID]; !ok {
		return models.Analysis{}, models.User{}, userNotFound()
	}
	// a replay is answered even if the token has since left the cache
	if record.IdempotencyKey != "" {
		key := idempotencyKey{userID: record.UserID, key: record.IdempotencyKey}
		if idx, seen := r.analysisByKey[key]; seen {
			return cloneAnalysis(r.analyses[idx]), r.users[record.UserID], nil
		}
	}
	if !r.tokens.Contains(record.TokenID) {
		return models.Analysis{}, models.User{}, apperrors.NotFoundError(models.ErrTokenNotFound, "Token not found")
	}

	record.ID = r.nextAnalysisID
	r.nextAnalysisID++
	record.Data = append([]byte(nil), record.Data...)
	r.analyses = append(r.analyses, record)
	idx := len(r.analyses) - 1
	r.analysesByUser[record.UserID] = append(r.analysesByUser[record.UserID], idx)
	if record.IdempotencyKey != "" {
		r.analysisByKey[idempotencyKey{userID: record.UserID, key: record.IdempotencyKey}] = idx
	}

	metrics.AnalysesCreated.WithLabelValues(string(record.Type)).Inc()
	u := r.awardLocked(record.UserID, record.Points, models.SourceAnalysis, record.ID)
	return cloneAnalysis(record), u, nil
}

func (r *MemoryRepository) ListAnalysesByUser(ctx context.Context, userID int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idxs := r.analysesByUser[userID]
	out := make([]models.Analysis, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, cloneAnalysis(r.analyses[i]))
	}
	return out, nil
}

func (r *MemoryRepository) ListPointEvents(ctx context.Context, userID int) ([]models.PointEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idxs := r.eventsByUser[userID]
	out := make([]models.PointEvent, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, r.events[i])
	}
	return out, nil
}

// DefaultTokens are served until the first successful provider fetch.
func DefaultTokens() []models.Token {
	return []models.Token{
		{
			ID:        1,
			Symbol:    "BTC",
			Name:      "Bitcoin",
			Price:     "42000",
			Change24h: "2.5",
			MarketCap: "800000000000",
			Volume24h: "25000000000",
		},
		{
			ID:        2,
			Symbol:    "ETH",
			Name:      "Ethereum",
			Price:     "2800",
			Change24h: "3.1",
			MarketCap: "300000000000",
			Volume24h: "15000000000",
		},
	}
}

func userNotFound() error {
	return apperrors.NotFoundError(models.ErrUserNotFound, "User not found")
}

func cloneAnalysis(a models.Analysis) models.Analysis {
	a.Data = append([]byte(nil), a.Data...)
	return a
}
