package dto

import (
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStockEntryRequest is the payload for /stock/in and /stock/out.
// Timestamp defaults to the current time when omitted.
type CreateStockEntryRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Timestamp   *time.Time      `json:"timestamp"`
}

// StockHistoryParams defines the query parameters for /stock/history.
type StockHistoryParams struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Type      string `form:"type" binding:"omitempty,oneof=IN OUT"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Search    string `form:"search"`
}

// TrendParams defines the query parameters for the trend endpoints.
type TrendParams struct {
	Days int `form:"days,default=7" binding:"omitempty,min=1,max=30"`
}

// StockSummaryResponse is the dashboard card payload. TodayUsage mirrors
// TodayStockOut; older clients still read it.
type StockSummaryResponse struct {
	CurrentStock      decimal.Decimal `json:"currentStock"`
	TodayUsage        decimal.Decimal `json:"todayUsage"`
	TodayInitialStock decimal.Decimal `json:"todayInitialStock"`
	TodayStockIn      decimal.Decimal `json:"todayStockIn"`
	TodayStockOut     decimal.Decimal `json:"todayStockOut"`
	TodayClosingStock decimal.Decimal `json:"todayClosingStock"`
}

// HistoryUser is the recording user embedded in a history row.
type HistoryUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StockHistoryItem is one row of the paginated history listing.
type StockHistoryItem struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	User        HistoryUser     `json:"user"`
}

// PageMeta carries pagination metadata.
type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
}

// StockHistoryResponse wraps history rows with pagination metadata.
type StockHistoryResponse struct {
	Data []StockHistoryItem `json:"data"`
	Meta PageMeta           `json:"meta"`
}

// StockTrendResponse is the running-balance trend payload.
type StockTrendResponse struct {
	Timezone  string                   `json:"timezone"`
	StartDate string                   `json:"startDate"`
	EndDate   string                   `json:"endDate"`
	Days      int                      `json:"days"`
	Points    []domain.StockTrendPoint `json:"points"`
}

// StockInOutTrendResponse is the in/out trend payload.
type StockInOutTrendResponse struct {
	Timezone  string                   `json:"timezone"`
	StartDate string                   `json:"startDate"`
	EndDate   string                   `json:"endDate"`
	Days      int                      `json:"days"`
	Points    []domain.StockInOutPoint `json:"points"`
}
