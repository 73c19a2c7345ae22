package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(db *pgxpool.Pool) portsrepo.StockRepository {
	return &PgxStockRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.StockRepository = (*PgxStockRepository)(nil)

const insertTransactionQuery = `
    INSERT INTO transactions (transaction_id, timestamp, type, amount, description, user_id)
    VALUES ($1, $2, $3, $4, $5, $6);
`

func (r *PgxStockRepository) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.Pool.Exec(ctx, insertTransactionQuery,
		txn.TransactionID,
		txn.Timestamp,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// InsertOutWithBalanceCheck reads the balance and appends the OUT entry in a
// single serializable transaction. Serialization failures (SQLSTATE 40001) are
// retried a few times before giving up.
func (r *PgxStockRepository) InsertOutWithBalanceCheck(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	const maxAttempts = 3
	var balance decimal.Decimal
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		balance, err = r.insertOutOnce(ctx, txn)
		if err == nil || !isSerializationFailure(err) {
			return balance, err
		}
	}
	return decimal.Zero, fmt.Errorf("failed to record stock-out after retries: %w", err)
}

func (r *PgxStockRepository) insertOutOnce(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, `
        SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN amount ELSE -amount END), 0)
        FROM transactions;
    `).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read current balance: %w", err)
	}

	if balance.LessThan(txn.Amount) {
		return balance, fmt.Errorf("%w: current stock %s, requested %s",
			apperrors.ErrInsufficientStock, balance.String(), txn.Amount.String())
	}

	_, err = tx.Exec(ctx, insertTransactionQuery,
		txn.TransactionID,
		txn.Timestamp,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.UserID,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit stock-out: %w", err)
	}
	return balance, nil
}

func (r *PgxStockRepository) GetSummary(ctx context.Context, tz string) (*domain.StockSummary, error) {
	query := `
        SELECT
            COALESCE(SUM(CASE WHEN type = 'IN' THEN amount ELSE -amount END), 0) AS current_stock,
            COALESCE(SUM(CASE WHEN (timestamp AT TIME ZONE $1)::date < (NOW() AT TIME ZONE $1)::date
                THEN (CASE WHEN type = 'IN' THEN amount ELSE -amount END) ELSE 0 END), 0) AS opening_stock,
            COALESCE(SUM(CASE WHEN (timestamp AT TIME ZONE $1)::date = (NOW() AT TIME ZONE $1)::date
                AND type = 'IN' THEN amount ELSE 0 END), 0) AS today_in,
            COALESCE(SUM(CASE WHEN (timestamp AT TIME ZONE $1)::date = (NOW() AT TIME ZONE $1)::date
                AND type = 'OUT' THEN amount ELSE 0 END), 0) AS today_out
        FROM transactions
        WHERE (timestamp AT TIME ZONE $1)::date <= (NOW() AT TIME ZONE $1)::date;
    `
	var s domain.StockSummary
	err := r.Pool.QueryRow(ctx, query, tz).Scan(
		&s.CurrentStock,
		&s.TodayOpeningStock,
		&s.TodayStockIn,
		&s.TodayStockOut,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock summary: %w", err)
	}
	s.TodayClosingStock = s.TodayOpeningStock.Add(s.TodayStockIn).Sub(s.TodayStockOut)
	return &s, nil
}

func (r *PgxStockRepository) BalanceBefore(ctx context.Context, t time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN amount ELSE -amount END), 0)
        FROM transactions
        WHERE timestamp < $1;
    `
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, t).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance before %s: %w", t.Format(time.RFC3339), err)
	}
	return balance, nil
}

func (r *PgxStockRepository) DailyMovements(ctx context.Context, tz string, start time.Time) ([]domain.DailyMovement, error) {
	query := `
        SELECT
            (timestamp AT TIME ZONE $1)::date AS day,
            COALESCE(SUM(CASE WHEN type = 'IN' THEN amount ELSE 0 END), 0) AS total_in,
            COALESCE(SUM(CASE WHEN type = 'OUT' THEN amount ELSE 0 END), 0) AS total_out
        FROM transactions
        WHERE timestamp >= $2
        GROUP BY day
        ORDER BY day ASC;
    `
	rows, err := r.Pool.Query(ctx, query, tz, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.DailyMovement
	for rows.Next() {
		var m domain.DailyMovement
		if err := rows.Scan(&m.Date, &m.TotalIn, &m.TotalOut); err != nil {
			return nil, fmt.Errorf("failed to scan daily movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily movements: %w", err)
	}
	return movements, nil
}

func (r *PgxStockRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.TransactionWithUser, int64, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != nil {
		conditions = append(conditions, "t.type = "+arg(*filter.Type))
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "t.timestamp >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "t.timestamp <= "+arg(*filter.EndDate))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions, "(t.description ILIKE "+p+" OR u.username ILIKE "+p+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`
        SELECT COUNT(*)
        FROM transactions t
        JOIN users u ON u.user_id = t.user_id
        %s;
    `, where)
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	listQuery := fmt.Sprintf(`
        SELECT t.transaction_id, t.timestamp, t.type, t.amount, t.description, t.user_id,
               u.username, u.email
        FROM transactions t
        JOIN users u ON u.user_id = t.user_id
        %s
        ORDER BY t.timestamp DESC
        LIMIT %s OFFSET %s;
    `, where, arg(filter.Limit), arg(filter.Offset))

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var items []domain.TransactionWithUser
	for rows.Next() {
		var t domain.TransactionWithUser
		err := rows.Scan(
			&t.TransactionID,
			&t.Timestamp,
			&t.Type,
			&t.Amount,
			&t.Description,
			&t.UserID,
			&t.Username,
			&t.Email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transactions: %w", err)
	}
	return items, total, nil
}

func isSerializationFailure(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "40001"
	}
	return false
}
