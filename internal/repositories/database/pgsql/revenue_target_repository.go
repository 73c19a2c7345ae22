package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRevenueTargetRepository struct {
	BaseRepository
}

func newPgxRevenueTargetRepository(db *pgxpool.Pool) portsrepo.RevenueTargetRepository {
	return &PgxRevenueTargetRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RevenueTargetRepository = (*PgxRevenueTargetRepository)(nil)

func (r *PgxRevenueTargetRepository) UpsertTarget(ctx context.Context, target domain.RevenueTarget) (*domain.RevenueTarget, error) {
	query := `
        INSERT INTO revenue_targets (target_id, company_id, year, month, target_amount)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (company_id, year, month)
        DO UPDATE SET target_amount = EXCLUDED.target_amount, updated_at = NOW()
        RETURNING target_id, company_id, year, month, target_amount, created_at, updated_at;
    `
	var t domain.RevenueTarget
	err := r.Pool.QueryRow(ctx, query,
		target.TargetID,
		target.CompanyID,
		target.Year,
		target.Month,
		target.TargetAmount,
	).Scan(&t.TargetID, &t.CompanyID, &t.Year, &t.Month, &t.TargetAmount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert revenue target: %w", err)
	}
	return &t, nil
}

func (r *PgxRevenueTargetRepository) ListTargets(ctx context.Context, filter portsrepo.RevenueFilter) ([]domain.RevenueTarget, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Year != 0 {
		conditions = append(conditions, "t.year = "+arg(filter.Year))
	}
	if filter.Month != 0 {
		conditions = append(conditions, "t.month = "+arg(filter.Month))
	}
	if filter.CompanyID != 0 {
		conditions = append(conditions, "t.company_id = "+arg(filter.CompanyID))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
        SELECT t.target_id, t.company_id, t.year, t.month, t.target_amount, t.created_at, t.updated_at,
               c.company_id, c.name, c.code, c.is_active
        FROM revenue_targets t
        JOIN companies c ON c.company_id = t.company_id
        %s
        ORDER BY t.year DESC, t.month DESC, t.company_id ASC;
    `, where)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.RevenueTarget
	for rows.Next() {
		var t domain.RevenueTarget
		var c domain.Company
		err := rows.Scan(
			&t.TargetID, &t.CompanyID, &t.Year, &t.Month, &t.TargetAmount, &t.CreatedAt, &t.UpdatedAt,
			&c.CompanyID, &c.Name, &c.Code, &c.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revenue target: %w", err)
		}
		t.Company = &c
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue targets: %w", err)
	}
	return targets, nil
}

func (r *PgxRevenueTargetRepository) TargetsForMonth(ctx context.Context, year, month int) (map[int64]decimal.Decimal, error) {
	query := `
        SELECT company_id, target_amount
        FROM revenue_targets
        WHERE year = $1 AND month = $2;
    `
	rows, err := r.Pool.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query month targets: %w", err)
	}
	defer rows.Close()

	targets := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var companyID int64
		var amount decimal.Decimal
		if err := rows.Scan(&companyID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan month target: %w", err)
		}
		targets[companyID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month targets: %w", err)
	}
	return targets, nil
}

func (r *PgxRevenueTargetRepository) TargetsByCompanyMonth(ctx context.Context, year int) ([]domain.CompanyMonthAmount, error) {
	query := `
        SELECT company_id, month, target_amount
        FROM revenue_targets
        WHERE year = $1
        ORDER BY company_id ASC, month ASC;
    `
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly targets: %w", err)
	}
	defer rows.Close()

	var amounts []domain.CompanyMonthAmount
	for rows.Next() {
		var a domain.CompanyMonthAmount
		if err := rows.Scan(&a.CompanyID, &a.Month, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan yearly target: %w", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating yearly targets: %w", err)
	}
	return amounts, nil
}
