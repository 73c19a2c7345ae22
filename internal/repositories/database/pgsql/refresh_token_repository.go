package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRefreshTokenRepository struct {
	BaseRepository
}

func newPgxRefreshTokenRepository(db *pgxpool.Pool) portsrepo.RefreshTokenRepository {
	return &PgxRefreshTokenRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RefreshTokenRepository = (*PgxRefreshTokenRepository)(nil)

func (r *PgxRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	query := `
        INSERT INTO refresh_tokens (token_id, token_hash, expires_at, revoked_at, user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		token.TokenID,
		token.TokenHash,
		token.ExpiresAt,
		token.RevokedAt,
		token.UserID,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) FindRefreshTokenByID(ctx context.Context, tokenID string) (*domain.RefreshToken, error) {
	query := `
        SELECT token_id, token_hash, expires_at, revoked_at, user_id, created_at
        FROM refresh_tokens
        WHERE token_id = $1;
    `
	var t domain.RefreshToken
	err := r.Pool.QueryRow(ctx, query, tokenID).Scan(
		&t.TokenID,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.RevokedAt,
		&t.UserID,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &t, nil
}

func (r *PgxRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	query := `
        UPDATE refresh_tokens
        SET revoked_at = NOW()
        WHERE token_id = $1 AND revoked_at IS NULL;
    `
	if _, err := r.Pool.Exec(ctx, query, tokenID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) RevokeTokensForUser(ctx context.Context, userID string) error {
	query := `
        UPDATE refresh_tokens
        SET revoked_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL;
    `
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}
	return nil
}
