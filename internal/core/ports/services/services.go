package services

import (
	"context"

	"github.com/dharmawan/portledger/internal/core/domain"
	"github.com/dharmawan/portledger/internal/dto"
)

// UserSvcFacade defines the user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthSvcFacade defines authentication and session lifecycle operations.
type AuthSvcFacade interface {
	// Login verifies credentials, revokes the user's outstanding refresh
	// tokens and issues a fresh session.
	Login(ctx context.Context, email, password string) (*dto.AuthSessionResponse, error)
	// Refresh rotates a valid refresh token into a fresh session.
	Refresh(ctx context.Context, rawToken string) (*dto.AuthSessionResponse, error)
	// Logout revokes all of the user's active refresh tokens.
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// StockSvcFacade defines the stock ledger operations.
type StockSvcFacade interface {
	RecordStockIn(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error)
	RecordStockOut(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error)
	GetSummary(ctx context.Context) (*dto.StockSummaryResponse, error)
	GetHistory(ctx context.Context, params dto.StockHistoryParams, actingRole string) (*dto.StockHistoryResponse, error)
	GetDailyTrend(ctx context.Context, days int) (*dto.StockTrendResponse, error)
	GetDailyInOutTrend(ctx context.Context, days int) (*dto.StockInOutTrendResponse, error)
}

// RevenueSvcFacade defines the revenue monitoring operations.
type RevenueSvcFacade interface {
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	SeedCompanies(ctx context.Context) error
	CreateOrUpdateTarget(ctx context.Context, req dto.CreateTargetRequest) (*domain.RevenueTarget, error)
	ListTargets(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueTarget, error)
	CreateOrUpdateRealization(ctx context.Context, req dto.CreateRealizationRequest, actingUserID string) (*domain.RevenueRealization, error)
	ListRealizations(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueRealization, error)
	GetSummary(ctx context.Context, year, month int) (*domain.RevenueSummary, error)
	GetTrend(ctx context.Context, year, month int) (*domain.RevenueTrend, error)
	GetYearlyComparison(ctx context.Context, year int) (*domain.YearlyComparison, error)
}

// SheetsSvcFacade defines the spreadsheet ingestion operations.
type SheetsSvcFacade interface {
	Status() dto.SyncStatusResponse
	// SyncNow runs one ingestion pass. Failures are reported in the result,
	// never raised.
	SyncNow(ctx context.Context) dto.SyncResultResponse
	HandleWebhook(ctx context.Context, req dto.SheetsWebhookRequest) dto.SyncResultResponse
	// Run blocks driving the periodic sync until ctx is cancelled.
	Run(ctx context.Context)
}

// ServiceContainer bundles all service facades for handler registration.
type ServiceContainer struct {
	User    UserSvcFacade
	Auth    AuthSvcFacade
	Stock   StockSvcFacade
	Revenue RevenueSvcFacade
	Sheets  SheetsSvcFacade
}
