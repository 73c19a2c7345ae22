package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/dharmawan/portledger/internal/utils"
	"github.com/google/uuid"
)

// refreshSecretBytes sizes the random half of a refresh token.
const refreshSecretBytes = 32

type authService struct {
	BaseService
	userRepo         portsrepo.UserRepository
	refreshTokenRepo portsrepo.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates the authentication service.
func NewAuthService(userRepo portsrepo.UserRepository, refreshTokenRepo portsrepo.RefreshTokenRepository, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, email, password string) (*dto.AuthSessionResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same answer as a wrong password so the response does not
			// reveal which emails exist.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user on login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected", slog.String("email", email))
		return nil, apperrors.ErrUnauthorized
	}

	// One active session per user: outstanding tokens die on login.
	if err := s.refreshTokenRepo.RevokeTokensForUser(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to revoke old refresh tokens", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to revoke old refresh tokens: %w", err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID), slog.String("role", user.Role))
	return session, nil
}

func (s *authService) Refresh(ctx context.Context, rawToken string) (*dto.AuthSessionResponse, error) {
	tokenID, secret, err := utils.SplitRefreshToken(rawToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	stored, err := s.refreshTokenRepo.FindRefreshTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up refresh token")
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if stored.RevokedAt != nil || !utils.CheckRefreshSecret(secret, stored.TokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	user, err := s.userRepo.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load refresh token user: %w", err)
	}

	// Rotation: the presented token is dead regardless of what follows.
	if err := s.refreshTokenRepo.RevokeRefreshToken(ctx, tokenID); err != nil {
		s.LogError(ctx, err, "Failed to revoke rotated refresh token", slog.String("token_id", tokenID))
		return nil, fmt.Errorf("failed to revoke rotated refresh token: %w", err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Session refreshed", slog.String("user_id", user.UserID))
	return session, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeTokensForUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to revoke tokens on logout", slog.String("user_id", userID))
		return fmt.Errorf("failed to revoke tokens on logout: %w", err)
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// issueSession mints the access token and a fresh refresh token for the user.
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*dto.AuthSessionResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, user.Username, user.Role,
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	secret, err := utils.GenerateSecureRandomString(refreshSecretBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	secretHash, err := utils.HashRefreshSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh secret: %w", err)
	}

	now := time.Now()
	token := domain.RefreshToken{
		TokenID:   uuid.NewString(),
		TokenHash: secretHash,
		ExpiresAt: now.Add(s.cfg.RefreshTokenExpiryDuration),
		UserID:    user.UserID,
		CreatedAt: now,
	}
	if err := s.refreshTokenRepo.SaveRefreshToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to persist refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.AuthSessionResponse{
		AccessToken:  accessToken,
		RefreshToken: token.TokenID + "." + secret,
		ExpiresIn:    int(s.cfg.JWTExpiryDuration.Seconds()),
		User:         dto.ToAuthUserResponse(user),
	}, nil
}
