package service

import (
	"context"
	"strings"

	"knowl/apperrors"
	"knowl/metrics"
	"knowl/models"

	"go.uber.org/zap"
)

// ChatReward is credited for every answered chat message.
const ChatReward = 1

const chatPreamble = "You are a helpful expert in blockchain technology, cryptocurrency markets, " +
	"and trading strategies. Provide clear, accurate, and educational responses about blockchain, " +
	"crypto markets, trading analysis, and investment strategies."

type ChatResult struct {
	Reply  string `json:"response"`
	Points int    `json:"points"`
}

// Converse forwards the message to the assistant and, on success, credits
// ChatReward. Points is the user's new balance.
func (s Service) Converse(ctx context.Context, userID int, message string) (ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return ChatResult{}, apperrors.InvalidRequestError(nil, "Missing message or userId")
	}
	if _, err := s.requireUser(ctx, userID); err != nil {
		return ChatResult{}, err
	}

	reply, err := s.chat.Complete(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: chatPreamble},
		{Role: models.RoleUser, Content: message},
	})
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Int("user_id", userID), zap.Error(err))
		metrics.ChatRequests.WithLabelValues("error").Inc()
		return ChatResult{}, apperrors.UpstreamError(err, "Failed to get AI response")
	}
	metrics.ChatRequests.WithLabelValues("ok").Inc()

	user, err := s.repo.AwardPoints(ctx, userID, ChatReward, models.SourceChat)
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{Reply: reply, Points: user.Points}, nil
}
