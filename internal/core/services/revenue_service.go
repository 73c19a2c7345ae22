package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// monitored port operator companies, seeded on demand
var seedCompanies = []struct {
	Name string
	Code string
}{
	{Name: "Bosowa Bandar Indonesia", Code: "BBI"},
	{Name: "Bosowa Bandar Agency", Code: "BBA"},
	{Name: "Jasa Pelabuhan Indonesia", Code: "JAPELIN"},
}

var millions = decimal.NewFromInt(1_000_000)

type revenueService struct {
	BaseService
	companyRepo     portsrepo.CompanyRepository
	targetRepo      portsrepo.RevenueTargetRepository
	realizationRepo portsrepo.RevenueRealizationRepository
	location        *time.Location
}

// NewRevenueService creates the revenue monitoring service.
func NewRevenueService(
	companyRepo portsrepo.CompanyRepository,
	targetRepo portsrepo.RevenueTargetRepository,
	realizationRepo portsrepo.RevenueRealizationRepository,
	cfg *config.Config,
) portssvc.RevenueSvcFacade {
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &revenueService{
		companyRepo:     companyRepo,
		targetRepo:      targetRepo,
		realizationRepo: realizationRepo,
		location:        loc,
	}
}

var _ portssvc.RevenueSvcFacade = (*revenueService)(nil)

func (s *revenueService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListActiveCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

func (s *revenueService) SeedCompanies(ctx context.Context) error {
	for _, c := range seedCompanies {
		if err := s.companyRepo.EnsureCompany(ctx, c.Name, c.Code); err != nil {
			s.LogError(ctx, err, "Failed to seed company", slog.String("code", c.Code))
			return fmt.Errorf("failed to seed company %s: %w", c.Code, err)
		}
	}
	s.LogInfo(ctx, "Companies seeded")
	return nil
}

func (s *revenueService) CreateOrUpdateTarget(ctx context.Context, req dto.CreateTargetRequest) (*domain.RevenueTarget, error) {
	if req.TargetAmount.IsNegative() {
		return nil, fmt.Errorf("%w: targetAmount must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}

	target, err := s.targetRepo.UpsertTarget(ctx, domain.RevenueTarget{
		TargetID:     uuid.NewString(),
		CompanyID:    req.CompanyID,
		Year:         req.Year,
		Month:        req.Month,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert target",
			slog.Int64("company_id", req.CompanyID),
			slog.Int("year", req.Year),
			slog.Int("month", req.Month))
		return nil, fmt.Errorf("failed to upsert target: %w", err)
	}
	return target, nil
}

func (s *revenueService) ListTargets(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueTarget, error) {
	targets, err := s.targetRepo.ListTargets(ctx, portsrepo.RevenueFilter{
		Year:      params.Year,
		Month:     params.Month,
		CompanyID: params.CompanyID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list targets")
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	if targets == nil {
		targets = []domain.RevenueTarget{}
	}
	return targets, nil
}

func (s *revenueService) CreateOrUpdateRealization(ctx context.Context, req dto.CreateRealizationRequest, actingUserID string) (*domain.RevenueRealization, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse realization date: %w", err)
	}

	realization, err := s.realizationRepo.UpsertRealization(ctx, domain.RevenueRealization{
		RealizationID: uuid.NewString(),
		CompanyID:     req.CompanyID,
		Date:          date,
		Amount:        req.Amount,
		Description:   req.Description,
		UserID:        actingUserID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert realization",
			slog.Int64("company_id", req.CompanyID),
			slog.String("date", req.Date))
		return nil, fmt.Errorf("failed to upsert realization: %w", err)
	}
	return realization, nil
}

func (s *revenueService) ListRealizations(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueRealization, error) {
	year, month := s.defaultPeriod(params.Year, params.Month)
	from, to := monthBounds(year, month)

	realizations, err := s.realizationRepo.ListRealizations(ctx, from, to, params.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list realizations")
		return nil, fmt.Errorf("failed to list realizations: %w", err)
	}
	if realizations == nil {
		realizations = []domain.RevenueRealization{}
	}
	return realizations, nil
}

// GetSummary builds the dashboard in four queries regardless of how many
// companies exist: the companies, the month's targets, the month's realization
// sums and today's realizations.
func (s *revenueService) GetSummary(ctx context.Context, year, month int) (*domain.RevenueSummary, error) {
	year, month = s.defaultPeriod(year, month)
	today := s.today()

	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetRepo.TargetsForMonth(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load month targets")
		return nil, fmt.Errorf("failed to load month targets: %w", err)
	}
	monthTotals, err := s.realizationRepo.MonthTotals(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load month totals")
		return nil, fmt.Errorf("failed to load month totals: %w", err)
	}
	todayAmounts, err := s.realizationRepo.AmountsOnDate(ctx, today)
	if err != nil {
		s.LogError(ctx, err, "Failed to load today's realizations")
		return nil, fmt.Errorf("failed to load today's realizations: %w", err)
	}

	days := daysInMonth(year, month)
	rows := make([]domain.CompanyRevenueSummary, len(companies))
	for i, company := range companies {
		target := targets[company.CompanyID]
		dailyTarget := decimal.Zero
		if !target.IsZero() {
			dailyTarget = target.Div(decimal.NewFromInt(int64(days)))
		}
		todayAmount := todayAmounts[company.CompanyID]
		monthTotal := monthTotals[company.CompanyID]

		rows[i] = domain.CompanyRevenueSummary{
			Company: company,
			Today: domain.RevenueFigures{
				Realisasi:  todayAmount,
				Target:     dailyTarget,
				Percentage: attainmentPercent(todayAmount, dailyTarget),
			},
			Month: domain.RevenueFigures{
				Realisasi:  monthTotal,
				Target:     target,
				Percentage: attainmentPercent(monthTotal, target),
			},
		}
	}

	return &domain.RevenueSummary{
		Year:      year,
		Month:     month,
		Date:      today.Format("2006-01-02"),
		Companies: rows,
	}, nil
}

func (s *revenueService) GetTrend(ctx context.Context, year, month int) (*domain.RevenueTrend, error) {
	year, month = s.defaultPeriod(year, month)
	days := daysInMonth(year, month)

	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	cells, err := s.realizationRepo.DailyAmounts(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load daily realization amounts")
		return nil, fmt.Errorf("failed to load daily realization amounts: %w", err)
	}

	byCompany := make(map[int64][]float64, len(companies))
	for _, company := range companies {
		byCompany[company.CompanyID] = make([]float64, days)
	}
	for _, cell := range cells {
		series, ok := byCompany[cell.CompanyID]
		if !ok || cell.Day < 1 || cell.Day > days {
			continue
		}
		series[cell.Day-1] = cell.Amount.Div(millions).InexactFloat64()
	}

	labels := make([]string, days)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}

	datasets := make([]domain.RevenueTrendDataset, len(companies))
	for i, company := range companies {
		datasets[i] = domain.RevenueTrendDataset{
			Company:     company.Code,
			CompanyName: company.Name,
			Data:        byCompany[company.CompanyID],
		}
	}

	return &domain.RevenueTrend{
		Year:     year,
		Month:    month,
		Labels:   labels,
		Datasets: datasets,
	}, nil
}

// GetYearlyComparison answers with two grouped queries instead of a query per
// company and month.
func (s *revenueService) GetYearlyComparison(ctx context.Context, year int) (*domain.YearlyComparison, error) {
	if year == 0 {
		year = time.Now().In(s.location).Year()
	}

	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetRepo.TargetsByCompanyMonth(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load yearly targets")
		return nil, fmt.Errorf("failed to load yearly targets: %w", err)
	}
	realized, err := s.realizationRepo.MonthlyTotals(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load yearly realization totals")
		return nil, fmt.Errorf("failed to load yearly realization totals: %w", err)
	}

	type key struct {
		companyID int64
		month     int
	}
	targetBy := make(map[key]decimal.Decimal, len(targets))
	for _, t := range targets {
		targetBy[key{t.CompanyID, t.Month}] = t.Amount
	}
	realizedBy := make(map[key]decimal.Decimal, len(realized))
	for _, r := range realized {
		realizedBy[key{r.CompanyID, r.Month}] = r.Amount
	}

	rows := make([]domain.CompanyYearlyComparison, len(companies))
	for i, company := range companies {
		months := make([]domain.MonthlyComparisonPoint, 12)
		for m := 1; m <= 12; m++ {
			months[m-1] = domain.MonthlyComparisonPoint{
				Month:    m,
				Target:   targetBy[key{company.CompanyID, m}],
				Realized: realizedBy[key{company.CompanyID, m}],
			}
		}
		rows[i] = domain.CompanyYearlyComparison{
			Company:     company.Code,
			CompanyName: company.Name,
			Months:      months,
		}
	}

	return &domain.YearlyComparison{Year: year, Companies: rows}, nil
}

func (s *revenueService) defaultPeriod(year, month int) (int, int) {
	now := time.Now().In(s.location)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

// today is the current local calendar day expressed as a UTC date value, the
// form the DATE column comparisons expect.
func (s *revenueService) today() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func monthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// attainmentPercent is realized/target as a percentage rounded to one
// decimal. A zero target reads as 0%, not infinity.
func attainmentPercent(realized, target decimal.Decimal) float64 {
	if target.IsZero() {
		return 0
	}
	pct := realized.Div(target).Mul(decimal.NewFromInt(100)).InexactFloat64()
	return math.Round(pct*10) / 10
}
