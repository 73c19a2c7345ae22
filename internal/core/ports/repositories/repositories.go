package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo         UserRepository
	RefreshTokenRepo RefreshTokenRepository
	StockRepo        StockRepository
	CompanyRepo      CompanyRepository
	TargetRepo       RevenueTargetRepository
	RealizationRepo  RevenueRealizationRepository
}
