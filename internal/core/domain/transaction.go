package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a stock movement.
type TransactionType string

const (
	StockIn  TransactionType = "IN"
	StockOut TransactionType = "OUT"
)

// Transaction is a single immutable entry in the fuel stock ledger.
// The balance at any instant is the signed running sum (IN positive,
// OUT negative) of all entries up to that instant.
type Transaction struct {
	TransactionID string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	UserID        string          `json:"userID"`
}

// TransactionWithUser is a ledger entry joined with the recording user,
// as returned by the history listing.
type TransactionWithUser struct {
	Transaction
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StockSummary holds the dashboard figures for the current business day,
// partitioned at the reporting timezone's midnight.
type StockSummary struct {
	CurrentStock      decimal.Decimal `json:"currentStock"`
	TodayOpeningStock decimal.Decimal `json:"todayInitialStock"`
	TodayStockIn      decimal.Decimal `json:"todayStockIn"`
	TodayStockOut     decimal.Decimal `json:"todayStockOut"`
	TodayClosingStock decimal.Decimal `json:"todayClosingStock"`
}

// DailyMovement is the per-local-day aggregate the trend queries produce.
type DailyMovement struct {
	Date     time.Time
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
}

// StockTrendPoint is one day of the running-balance trend series.
type StockTrendPoint struct {
	Date         string          `json:"date"`
	Label        string          `json:"label"`
	OpeningStock decimal.Decimal `json:"openingStock"`
	Delta        decimal.Decimal `json:"delta"`
	ClosingStock decimal.Decimal `json:"closingStock"`
}

// StockInOutPoint is one day of the in/out trend series.
type StockInOutPoint struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
}
