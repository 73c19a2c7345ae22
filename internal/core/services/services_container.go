package services

import (
	"context"

	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider,
	newSheetSource func(ctx context.Context) (portsrepo.SheetSource, error)) *portssvc.ServiceContainer {

	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, repos.RefreshTokenRepo, cfg)
	container.Stock = NewStockService(repos.StockRepo, cfg)
	container.Revenue = NewRevenueService(repos.CompanyRepo, repos.TargetRepo, repos.RealizationRepo, cfg)
	container.Sheets = NewSheetsService(cfg.Sheets, repos.CompanyRepo, repos.RealizationRepo, newSheetSource)

	return container
}
