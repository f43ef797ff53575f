package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"knowl/apperrors"
	"knowl/metrics"
	"knowl/models"

	"go.uber.org/zap"
)

// ListTokens returns fresh listings, or the cached tokens when the
// provider is unavailable.
func (s Service) ListTokens(ctx context.Context) ([]models.Token, error) {
	tokens, err := s.fetchListings(ctx, s.opts.ListingLimit)
	if err != nil {
		s.logger.Warn("market listings unavailable, serving cache", zap.Error(err))
		metrics.MarketRequests.WithLabelValues("listings", "fallback").Inc()
		return s.repo.ListTokens(ctx)
	}
	metrics.MarketRequests.WithLabelValues("listings", "ok").Inc()
	return s.cacheTokens(ctx, tokens), nil
}

// SearchTokens matches query against symbol and name. A blank query
// returns the cached list.
func (s Service) SearchTokens(ctx context.Context, query string) ([]models.Token, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListTokens(ctx)
	}

	all, err := s.fetchListings(ctx, s.opts.SearchFetchLimit)
	if err != nil {
		s.logger.Warn("market search unavailable, searching cache",
			zap.String("query", query),
			zap.Error(err),
		)
		metrics.MarketRequests.WithLabelValues("search", "fallback").Inc()
		cached, err := s.repo.SearchTokens(ctx, query)
		if err != nil {
			return nil, err
		}
		return capTokens(cached, s.opts.SearchLimit), nil
	}
	metrics.MarketRequests.WithLabelValues("search", "ok").Inc()

	matched := make([]models.Token, 0, s.opts.SearchLimit)
	for _, t := range all {
		if t.Matches(query) {
			matched = append(matched, t)
			if len(matched) == s.opts.SearchLimit {
				break
			}
		}
	}
	return s.cacheTokens(ctx, matched), nil
}

// GetToken serves a token from the cache, asking the provider on a miss.
func (s Service) GetToken(ctx context.Context, id int) (models.Token, error) {
	t, err := s.repo.GetToken(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, models.ErrTokenNotFound) {
		return models.Token{}, err
	}

	v, err, _ := s.group.Do("quote:"+strconv.Itoa(id), func() (interface{}, error) {
		return s.market.Quote(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Warn("market quote unavailable", zap.Int("token_id", id), zap.Error(err))
		}
		metrics.MarketRequests.WithLabelValues("quote", "miss").Inc()
		return models.Token{}, apperrors.NotFoundError(models.ErrTokenNotFound, "Token not found")
	}
	metrics.MarketRequests.WithLabelValues("quote", "ok").Inc()

	t = v.(models.Token)
	if err := s.repo.UpsertToken(ctx, t); err != nil {
		s.logger.Warn("provider returned invalid token", zap.Int("token_id", id), zap.Error(err))
		return models.Token{}, apperrors.NotFoundError(models.ErrTokenNotFound, "Token not found")
	}
	return t, nil
}

func (s Service) fetchListings(ctx context.Context, limit int) ([]models.Token, error) {
	v, err, _ := s.group.Do("listings:"+strconv.Itoa(limit), func() (interface{}, error) {
		return s.market.Listings(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Token), nil
}

// cacheTokens upserts every token and returns the ones the store accepted.
func (s Service) cacheTokens(ctx context.Context, tokens []models.Token) []models.Token {
	out := make([]models.Token, 0, len(tokens))
	for _, t := range tokens {
		if err := s.repo.UpsertToken(ctx, t); err != nil {
			s.logger.Debug("skipping token", zap.Int("token_id", t.ID), zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out
}

func capTokens(tokens []models.Token, limit int) []models.Token {
	if len(tokens) > limit {
		return tokens[:limit]
	}
	return tokens
}
