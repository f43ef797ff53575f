package service

import (
	"context"
	"strings"
	"unicode"

	"knowl/apperrors"
	"knowl/models"
)

func (s Service) validUsername(name string) bool {
	// length counts runes
	if err := s.validate.Var(name, "required,max=64"); err != nil {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

// UpdateUsername renames a user. Usernames are unique across users.
func (s Service) UpdateUsername(ctx context.Context, userID int, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if !s.validUsername(username) {
		return models.User{}, apperrors.InvalidRequestError(nil, "Invalid username")
	}
	if _, err := s.requireUser(ctx, userID); err != nil {
		return models.User{}, err
	}
	return s.repo.UpdateUsername(ctx, userID, username)
}

// ListPointEvents returns the user's points journal, oldest first.
func (s Service) ListPointEvents(ctx context.Context, userID int) ([]models.PointEvent, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListPointEvents(ctx, userID)
}
