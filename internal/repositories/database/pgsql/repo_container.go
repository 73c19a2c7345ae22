package pgsql

import (
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	refreshTokenRepo := newPgxRefreshTokenRepository(dbPool)
	stockRepo := newPgxStockRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	targetRepo := newPgxRevenueTargetRepository(dbPool)
	realizationRepo := newPgxRevenueRealizationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		StockRepo:        stockRepo,
		CompanyRepo:      companyRepo,
		TargetRepo:       targetRepo,
		RealizationRepo:  realizationRepo,
	}
}
