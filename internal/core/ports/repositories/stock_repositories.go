package repositories

import (
	"context"
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows the history listing.
type TransactionFilter struct {
	Type      *domain.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Limit     int
	Offset    int
}

// StockRepository defines persistence operations for the stock ledger.
type StockRepository interface {
	// InsertTransaction appends a ledger entry without a balance check (IN).
	InsertTransaction(ctx context.Context, txn domain.Transaction) error
	// InsertOutWithBalanceCheck appends an OUT entry inside a serializable
	// transaction spanning the balance read, so two concurrent stock-outs
	// cannot both observe the same balance. Returns the balance at check
	// time; the error wraps apperrors.ErrInsufficientStock on rejection.
	InsertOutWithBalanceCheck(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)
	// GetSummary aggregates the full ledger partitioned at the reporting
	// timezone's midnight.
	GetSummary(ctx context.Context, tz string) (*domain.StockSummary, error)
	// BalanceBefore returns the signed running sum of entries strictly
	// before the given instant.
	BalanceBefore(ctx context.Context, t time.Time) (decimal.Decimal, error)
	// DailyMovements returns per-local-day IN/OUT totals for entries at or
	// after start, oldest first.
	DailyMovements(ctx context.Context, tz string, start time.Time) ([]domain.DailyMovement, error)
	// ListTransactions returns a page of entries joined with their users,
	// newest first, plus the unpaged total.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.TransactionWithUser, int64, error)
}
