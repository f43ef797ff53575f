package service

import (
	"context"
	"errors"
	"time"

	"knowl/apperrors"
	"knowl/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -destination=./mocks/mock_service.go -package=mocks knowl/service Repository,MarketProvider,ChatProvider

type Repository interface {
	CreateUser(ctx context.Context, username, walletAddress string) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByWallet(ctx context.Context, walletAddress string) (models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	UpdateUsername(ctx context.Context, id int, username string) (models.User, error)
	AwardPoints(ctx context.Context, id, delta int, source models.PointSource) (models.User, error)
	UpsertToken(ctx context.Context, token models.Token) error
	GetToken(ctx context.Context, id int) (models.Token, error)
	ListTokens(ctx context.Context) ([]models.Token, error)
	SearchTokens(ctx context.Context, query string) ([]models.Token, error)
	AppendAnalysis(ctx context.Context, record models.Analysis) (models.Analysis, models.User, error)
	ListAnalysesByUser(ctx context.Context, userID int) ([]models.Analysis, error)
	ListPointEvents(ctx context.Context, userID int) ([]models.PointEvent, error)
}

// MarketProvider is the upstream source of token market data.
type MarketProvider interface {
	Listings(ctx context.Context, limit int) ([]models.Token, error)
	Quote(ctx context.Context, id int) (models.Token, error)
}

// ChatProvider produces an assistant reply for a conversation.
type ChatProvider interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

type Options struct {
	JWTSecret        string
	ChallengeTTL     time.Duration
	ListingLimit     int
	SearchLimit      int
	SearchFetchLimit int
}

func (o Options) withDefaults() Options {
	if o.ChallengeTTL <= 0 {
		o.ChallengeTTL = 5 * time.Minute
	}
	if o.ListingLimit <= 0 {
		o.ListingLimit = 100
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = 50
	}
	if o.SearchFetchLimit <= 0 {
		o.SearchFetchLimit = 2000
	}
	return o
}

type Service struct {
	repo     Repository
	market   MarketProvider
	chat     ChatProvider
	opts     Options
	logger   *zap.Logger
	group    *singleflight.Group
	validate *validator.Validate
	now      func() time.Time
}

func NewService(
	repo Repository,
	market MarketProvider,
	chat ChatProvider,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Service{
		repo:     repo,
		market:   market,
		chat:     chat,
		opts:     opts.withDefaults(),
		logger:   logger,
		group:    &singleflight.Group{},
		validate: validator.New(),
		now:      time.Now,
	}
}

// requireUser loads a user, reporting an unknown id as Unauthorized.
func (s Service) requireUser(ctx context.Context, id int) (models.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, apperrors.UnauthorizedError(err, "Unauthorized")
		}
		return models.User{}, err
	}
	return u, nil
}
