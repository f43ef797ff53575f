package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"knowl/apperrors"
	"knowl/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const provisionAttempts = 3

type Challenge struct {
	Token     string    `json:"challenge"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type challengeClaims struct {
	Wallet string `json:"wallet"`
	Nonce  string `json:"nonce"`
	jwt.RegisteredClaims
}

// Authenticate resolves a wallet to its user, provisioning one on first
// sight. The requested username is used when it is valid and free,
// otherwise a placeholder derived from the wallet is assigned.
func (s Service) Authenticate(
	ctx context.Context,
	walletAddress, username string,
) (models.User, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return models.User{}, apperrors.BadCredentialError(err, "Invalid wallet address")
	}

	var lastErr error
	for attempt := 0; attempt < provisionAttempts; attempt++ {
		user, err := s.repo.GetUserByWallet(ctx, wallet)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, err
		}

		name, err := s.chooseUsername(ctx, wallet, username)
		if err != nil {
			return models.User{}, err
		}
		user, err = s.repo.CreateUser(ctx, name, wallet)
		if err == nil {
			s.logger.Info("provisioned user",
				zap.Int("user_id", user.ID),
				zap.String("username", user.Username),
				zap.String("wallet", user.WalletAddress),
			)
			return user, nil
		}
		// Both races are settled by looking again: a concurrent request
		// either registered the wallet or took the username.
		if !errors.Is(err, models.ErrWalletTaken) && !errors.Is(err, models.ErrUsernameTaken) {
			return models.User{}, err
		}
		lastErr = err
	}
	return models.User{}, lastErr
}

// CurrentUser returns the user registered for a wallet.
func (s Service) CurrentUser(ctx context.Context, walletAddress string) (models.User, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return models.User{}, apperrors.UnauthorizedError(err, "Unauthorized")
	}
	user, err := s.repo.GetUserByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, apperrors.UnauthorizedError(err, "Unauthorized")
		}
		return models.User{}, err
	}
	return user, nil
}

func (s Service) chooseUsername(ctx context.Context, wallet, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && s.validUsername(requested) {
		taken, err := s.repo.UsernameTaken(ctx, requested)
		if err != nil {
			return "", err
		}
		if !taken {
			return requested, nil
		}
	}

	candidates := PlaceholderUsernames(wallet)
	for _, name := range candidates {
		taken, err := s.repo.UsernameTaken(ctx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return fmt.Sprintf("%s_%s", candidates[len(candidates)-1], uuid.NewString()[:8]), nil
}

// IssueChallenge returns a signed, expiring nonce the wallet owner must
// sign with personal_sign before VerifyChallenge accepts it.
func (s Service) IssueChallenge(ctx context.Context, walletAddress string) (Challenge, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return Challenge{}, apperrors.BadCredentialError(err, "Invalid wallet address")
	}
	if !IsEVMAddress(wallet) {
		return Challenge{}, apperrors.BadCredentialError(nil, "Signature login requires an EVM wallet")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.opts.ChallengeTTL)
	claims := challengeClaims{
		Wallet: wallet,
		Nonce:  uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wallet,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return Challenge{}, apperrors.GeneralError(err)
	}
	return Challenge{
		Token:     token,
		Message:   ChallengeMessage(wallet, claims.Nonce),
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyChallenge checks the signature over an issued challenge and then
// authenticates its wallet.
func (s Service) VerifyChallenge(
	ctx context.Context,
	challenge, signature, username string,
) (models.User, error) {
	var claims challengeClaims
	parsed, err := jwt.ParseWithClaims(challenge, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.opts.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return models.User{}, apperrors.UnauthorizedError(err, "Invalid or expired challenge")
	}

	signer, err := VerifyEIP191Signature(ChallengeMessage(claims.Wallet, claims.Nonce), signature)
	if err != nil {
		return models.User{}, apperrors.UnauthorizedError(err, "Invalid signature")
	}
	if signer.Hex() != claims.Wallet {
		s.logger.Warn("challenge signed by another key",
			zap.String("wallet", claims.Wallet),
			zap.String("signer", signer.Hex()),
		)
		return models.User{}, apperrors.UnauthorizedError(nil, "Signature does not match wallet")
	}
	return s.Authenticate(ctx, claims.Wallet, username)
}

// ChallengeMessage is the exact text a wallet signs to log in.
func ChallengeMessage(wallet, nonce string) string {
	return fmt.Sprintf("Sign in to Knowl\nWallet: %s\nNonce: %s", wallet, nonce)
}
