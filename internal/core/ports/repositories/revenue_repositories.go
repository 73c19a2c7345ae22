package repositories

import (
	"context"
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevenueFilter narrows target/realization listings.
type RevenueFilter struct {
	Year      int
	Month     int
	CompanyID int64
}

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	ListActiveCompanies(ctx context.Context) ([]domain.Company, error)
	FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error)
	// EnsureCompany inserts the company if its code is not present yet.
	EnsureCompany(ctx context.Context, name, code string) error
}

// RevenueTargetRepository defines persistence operations for monthly targets.
type RevenueTargetRepository interface {
	// UpsertTarget creates or overwrites the target for its natural key
	// (company, year, month).
	UpsertTarget(ctx context.Context, target domain.RevenueTarget) (*domain.RevenueTarget, error)
	ListTargets(ctx context.Context, filter RevenueFilter) ([]domain.RevenueTarget, error)
	// TargetsForMonth returns every company's target amount for one month.
	TargetsForMonth(ctx context.Context, year, month int) (map[int64]decimal.Decimal, error)
	// TargetsByCompanyMonth returns grouped (company, month) target amounts
	// for a whole year.
	TargetsByCompanyMonth(ctx context.Context, year int) ([]domain.CompanyMonthAmount, error)
}

// RevenueRealizationRepository defines persistence operations for daily
// realizations.
type RevenueRealizationRepository interface {
	// UpsertRealization creates or overwrites the realization for its
	// natural key (company, date). Description and user are only replaced
	// when non-empty.
	UpsertRealization(ctx context.Context, realization domain.RevenueRealization) (*domain.RevenueRealization, error)
	ListRealizations(ctx context.Context, from, to time.Time, companyID int64) ([]domain.RevenueRealization, error)
	// MonthTotals returns the summed realization per company for one month.
	MonthTotals(ctx context.Context, year, month int) (map[int64]decimal.Decimal, error)
	// AmountsOnDate returns each company's realization recorded for one day.
	AmountsOnDate(ctx context.Context, date time.Time) (map[int64]decimal.Decimal, error)
	// DailyAmounts returns (company, day-of-month, amount) cells for one month.
	DailyAmounts(ctx context.Context, year, month int) ([]domain.CompanyDayAmount, error)
	// MonthlyTotals returns grouped (company, month) realization sums for a year.
	MonthlyTotals(ctx context.Context, year int) ([]domain.CompanyMonthAmount, error)
	// DeleteByDescriptionForYear removes rows carrying the given marker
	// description within a year, returning the number removed.
	DeleteByDescriptionForYear(ctx context.Context, year int, description string) (int64, error)
}
