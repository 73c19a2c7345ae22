package repositories

import (
	"context"

	"github.com/dharmawan/portledger/internal/core/domain"
)

// RefreshTokenRepository defines persistence operations for session
// refresh tokens.
type RefreshTokenRepository interface {
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error
	FindRefreshTokenByID(ctx context.Context, tokenID string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID string) error
	RevokeTokensForUser(ctx context.Context, userID string) error
}
