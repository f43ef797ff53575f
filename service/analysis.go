package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"knowl/apperrors"
	"knowl/models"

	"go.uber.org/zap"
)

var analysisPoints = map[models.AnalysisType]int{
	models.AnalysisBasic:    10,
	models.AnalysisAdvanced: 20,
	models.AnalysisPremium:  30,
}

// PointsForType returns the reward for an analysis tier.
func PointsForType(t models.AnalysisType) (int, bool) {
	p, ok := analysisPoints[t]
	return p, ok
}

type AnalysisRequest struct {
	UserID         int
	TokenID        int
	Type           models.AnalysisType
	Data           json.RawMessage
	IdempotencyKey string
}

type AnalysisResult struct {
	models.Analysis
	UserPoints int `json:"userPoints"`
}

// RequestAnalysis records an analysis and credits its tier reward in one
// step. A repeated IdempotencyKey returns the first result unchanged.
func (s Service) RequestAnalysis(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	if _, err := s.requireUser(ctx, req.UserID); err != nil {
		return AnalysisResult{}, err
	}
	// With an idempotency key the store decides, so a replay survives
	// token eviction.
	if _, err := s.repo.GetToken(ctx, req.TokenID); err != nil && req.IdempotencyKey == "" {
		return AnalysisResult{}, err
	}
	points, ok := PointsForType(req.Type)
	if !ok {
		return AnalysisResult{}, apperrors.InvalidRequestError(models.ErrInvalidType, "Invalid analysis type")
	}

	data := req.Data
	if len(data) == 0 || string(data) == "null" {
		data, _ = json.Marshal(map[string]string{"timestamp": s.now().UTC().Format(time.RFC3339)})
	}

	analysis, user, err := s.repo.AppendAnalysis(ctx, models.Analysis{
		UserID:         req.UserID,
		TokenID:        req.TokenID,
		Points:         points,
		Type:           req.Type,
		Data:           data,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return AnalysisResult{}, apperrors.UnauthorizedError(err, "Unauthorized")
		}
		return AnalysisResult{}, err
	}

	s.logger.Debug("analysis recorded",
		zap.Int("analysis_id", analysis.ID),
		zap.Int("user_id", user.ID),
		zap.String("type", string(analysis.Type)),
		zap.Int("balance", user.Points),
	)
	return AnalysisResult{Analysis: analysis, UserPoints: user.Points}, nil
}

// ListAnalyses returns the user's analyses in creation order.
func (s Service) ListAnalyses(ctx context.Context, userID int) ([]models.Analysis, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListAnalysesByUser(ctx, userID)
}
