// Package bootstrap seeds the default operating data a fresh deployment
// needs: one admin, one operational user and the monitored companies.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/dharmawan/portledger/internal/utils"
	"github.com/google/uuid"
)

const defaultOperationalEmail = "operasional@portledger.local"

var defaultCompanies = []struct {
	Name string
	Code string
}{
	{Name: "Bosowa Bandar Indonesia", Code: "BBI"},
	{Name: "Bosowa Bandar Agency", Code: "BBA"},
	{Name: "Jasa Pelabuhan Indonesia", Code: "JAPELIN"},
}

// SeedDefaults idempotently creates the default users and companies. It runs
// only when SEED_DEFAULTS is set and never overwrites existing rows.
func SeedDefaults(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	if !cfg.SeedDefaults {
		return nil
	}

	for _, c := range defaultCompanies {
		if err := repos.CompanyRepo.EnsureCompany(ctx, c.Name, c.Code); err != nil {
			return fmt.Errorf("failed to seed company %s: %w", c.Code, err)
		}
	}
	logger.Info("Default companies seeded", slog.Int("count", len(defaultCompanies)))

	if cfg.DefaultAdminPassword == "" {
		logger.Warn("DEFAULT_ADMIN_PASSWORD not set, skipping default users")
		return nil
	}

	if err := ensureUser(ctx, repos.UserRepo, "admin", cfg.DefaultAdminEmail, cfg.DefaultAdminPassword, domain.RoleAdmin, logger); err != nil {
		return err
	}
	return ensureUser(ctx, repos.UserRepo, "operasional", defaultOperationalEmail, cfg.DefaultAdminPassword, domain.RoleOperational, logger)
}

func ensureUser(ctx context.Context, userRepo portsrepo.UserRepository, username, email, password, role string, logger *slog.Logger) error {
	_, err := userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for existing %s user: %w", role, err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to seed %s user: %w", role, err)
	}
	logger.Info("Default user seeded", slog.String("username", username), slog.String("role", role))
	return nil
}
