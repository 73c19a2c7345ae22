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
)

const historyDateLayout = "2006-01-02"

type stockService struct {
	BaseService
	stockRepo portsrepo.StockRepository
	location  *time.Location
	timezone  string
}

// NewStockService creates the fuel stock ledger service. The reporting
// timezone decides where a business day begins for summaries and trends.
func NewStockService(stockRepo portsrepo.StockRepository, cfg *config.Config) portssvc.StockSvcFacade {
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &stockService{
		stockRepo: stockRepo,
		location:  loc,
		timezone:  cfg.ReportTimezone,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) RecordStockIn(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error) {
	txn, err := s.buildEntry(req, domain.StockIn, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.stockRepo.InsertTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to record stock-in", slog.String("user_id", actingUserID))
		return nil, fmt.Errorf("failed to record stock-in: %w", err)
	}

	s.LogInfo(ctx, "Stock-in recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()))
	return txn, nil
}

func (s *stockService) RecordStockOut(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error) {
	txn, err := s.buildEntry(req, domain.StockOut, actingUserID)
	if err != nil {
		return nil, err
	}

	balance, err := s.stockRepo.InsertOutWithBalanceCheck(ctx, *txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to record stock-out",
			slog.String("user_id", actingUserID),
			slog.String("balance", balance.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Stock-out recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()))
	return txn, nil
}

func (s *stockService) buildEntry(req dto.CreateStockEntryRequest, txType domain.TransactionType, actingUserID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		Timestamp:     ts,
		Type:          txType,
		Amount:        req.Amount,
		Description:   req.Description,
		UserID:        actingUserID,
	}, nil
}

func (s *stockService) GetSummary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	summary, err := s.stockRepo.GetSummary(ctx, s.timezone)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute stock summary")
		return nil, fmt.Errorf("failed to compute stock summary: %w", err)
	}
	return &dto.StockSummaryResponse{
		CurrentStock:      summary.CurrentStock,
		TodayUsage:        summary.TodayStockOut,
		TodayInitialStock: summary.TodayOpeningStock,
		TodayStockIn:      summary.TodayStockIn,
		TodayStockOut:     summary.TodayStockOut,
		TodayClosingStock: summary.TodayClosingStock,
	}, nil
}

func (s *stockService) GetHistory(ctx context.Context, params dto.StockHistoryParams, actingRole string) (*dto.StockHistoryResponse, error) {
	filter := portsrepo.TransactionFilter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: (params.Page - 1) * params.Limit,
	}

	// Operational staff only ever record usage, so their history view is
	// pinned to OUT entries whatever the request says.
	txType := params.Type
	if actingRole == domain.RoleOperational {
		txType = string(domain.StockOut)
	}
	if txType != "" {
		t := domain.TransactionType(txType)
		filter.Type = &t
	}

	if params.StartDate != "" {
		start, err := time.ParseInLocation(historyDateLayout, params.StartDate, s.location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startDate", apperrors.ErrValidation)
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := time.ParseInLocation(historyDateLayout, params.EndDate, s.location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endDate", apperrors.ErrValidation)
		}
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &endOfDay
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}

	rows, total, err := s.stockRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock history")
		return nil, fmt.Errorf("failed to list stock history: %w", err)
	}

	items := make([]dto.StockHistoryItem, len(rows))
	for i, row := range rows {
		items[i] = dto.StockHistoryItem{
			ID:          row.TransactionID,
			Timestamp:   row.Timestamp,
			Type:        string(row.Type),
			Amount:      row.Amount,
			Description: row.Description,
			User: dto.HistoryUser{
				ID:       row.UserID,
				Username: row.Username,
				Email:    row.Email,
			},
		}
	}

	totalPages := 0
	if params.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.Limit)))
	}
	return &dto.StockHistoryResponse{
		Data: items,
		Meta: dto.PageMeta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: params.Limit,
			CurrentPage:  params.Page,
			TotalPages:   totalPages,
		},
	}, nil
}

func (s *stockService) GetDailyTrend(ctx context.Context, days int) (*dto.StockTrendResponse, error) {
	start, dates := s.trendWindow(days)

	opening, err := s.stockRepo.BalanceBefore(ctx, start)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed trend opening balance")
		return nil, fmt.Errorf("failed to seed trend opening balance: %w", err)
	}

	movements, err := s.dailyMovementsByDate(ctx, start)
	if err != nil {
		return nil, err
	}

	points := make([]domain.StockTrendPoint, len(dates))
	for i, day := range dates {
		m := movements[day.Format(historyDateLayout)]
		delta := m.TotalIn.Sub(m.TotalOut)
		closing := opening.Add(delta)
		points[i] = domain.StockTrendPoint{
			Date:         day.Format(historyDateLayout),
			Label:        day.Format("2 Jan"),
			OpeningStock: opening,
			Delta:        delta,
			ClosingStock: closing,
		}
		opening = closing
	}

	return &dto.StockTrendResponse{
		Timezone:  s.timezone,
		StartDate: dates[0].Format(historyDateLayout),
		EndDate:   dates[len(dates)-1].Format(historyDateLayout),
		Days:      days,
		Points:    points,
	}, nil
}

func (s *stockService) GetDailyInOutTrend(ctx context.Context, days int) (*dto.StockInOutTrendResponse, error) {
	start, dates := s.trendWindow(days)

	movements, err := s.dailyMovementsByDate(ctx, start)
	if err != nil {
		return nil, err
	}

	points := make([]domain.StockInOutPoint, len(dates))
	for i, day := range dates {
		m := movements[day.Format(historyDateLayout)]
		points[i] = domain.StockInOutPoint{
			Date:     day.Format(historyDateLayout),
			Label:    day.Format("2 Jan"),
			TotalIn:  m.TotalIn,
			TotalOut: m.TotalOut,
		}
	}

	return &dto.StockInOutTrendResponse{
		Timezone:  s.timezone,
		StartDate: dates[0].Format(historyDateLayout),
		EndDate:   dates[len(dates)-1].Format(historyDateLayout),
		Days:      days,
		Points:    points,
	}, nil
}

// trendWindow returns the window start instant (local midnight, days-1 days
// ago) and the local dates covered, oldest first.
func (s *stockService) trendWindow(days int) (time.Time, []time.Time) {
	now := time.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	start := today.AddDate(0, 0, -(days - 1))

	dates := make([]time.Time, days)
	for i := 0; i < days; i++ {
		dates[i] = start.AddDate(0, 0, i)
	}
	return start, dates
}

func (s *stockService) dailyMovementsByDate(ctx context.Context, start time.Time) (map[string]domain.DailyMovement, error) {
	movements, err := s.stockRepo.DailyMovements(ctx, s.timezone, start)
	if err != nil {
		s.LogError(ctx, err, "Failed to load daily movements")
		return nil, fmt.Errorf("failed to load daily movements: %w", err)
	}
	byDate := make(map[string]domain.DailyMovement, len(movements))
	for _, m := range movements {
		byDate[m.Date.Format(historyDateLayout)] = m
	}
	return byDate, nil
}
