package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRevenueRealizationRepository struct {
	BaseRepository
}

func newPgxRevenueRealizationRepository(db *pgxpool.Pool) portsrepo.RevenueRealizationRepository {
	return &PgxRevenueRealizationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RevenueRealizationRepository = (*PgxRevenueRealizationRepository)(nil)

func (r *PgxRevenueRealizationRepository) UpsertRealization(ctx context.Context, realization domain.RevenueRealization) (*domain.RevenueRealization, error) {
	// Description and user survive an overwrite unless the new row carries
	// non-empty values of its own.
	query := `
        INSERT INTO revenue_realizations (realization_id, company_id, date, amount, description, user_id)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
        ON CONFLICT (company_id, date)
        DO UPDATE SET
            amount = EXCLUDED.amount,
            description = COALESCE(EXCLUDED.description, revenue_realizations.description),
            user_id = COALESCE(EXCLUDED.user_id, revenue_realizations.user_id),
            updated_at = NOW()
        RETURNING realization_id, company_id, date, amount,
                  COALESCE(description, ''), COALESCE(user_id::text, ''),
                  created_at, updated_at;
    `
	var out domain.RevenueRealization
	err := r.Pool.QueryRow(ctx, query,
		realization.RealizationID,
		realization.CompanyID,
		realization.Date,
		realization.Amount,
		realization.Description,
		realization.UserID,
	).Scan(
		&out.RealizationID, &out.CompanyID, &out.Date, &out.Amount,
		&out.Description, &out.UserID, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert revenue realization: %w", err)
	}
	return &out, nil
}

func (r *PgxRevenueRealizationRepository) ListRealizations(ctx context.Context, from, to time.Time, companyID int64) ([]domain.RevenueRealization, error) {
	query := `
        SELECT r.realization_id, r.company_id, r.date, r.amount,
               COALESCE(r.description, ''), COALESCE(r.user_id::text, ''),
               r.created_at, r.updated_at,
               c.company_id, c.name, c.code, c.is_active
        FROM revenue_realizations r
        JOIN companies c ON c.company_id = r.company_id
        WHERE r.date >= $1 AND r.date <= $2
          AND ($3 = 0 OR r.company_id = $3)
        ORDER BY r.date ASC, r.company_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue realizations: %w", err)
	}
	defer rows.Close()

	var realizations []domain.RevenueRealization
	for rows.Next() {
		var rr domain.RevenueRealization
		var c domain.Company
		err := rows.Scan(
			&rr.RealizationID, &rr.CompanyID, &rr.Date, &rr.Amount,
			&rr.Description, &rr.UserID, &rr.CreatedAt, &rr.UpdatedAt,
			&c.CompanyID, &c.Name, &c.Code, &c.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revenue realization: %w", err)
		}
		rr.Company = &c
		realizations = append(realizations, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue realizations: %w", err)
	}
	return realizations, nil
}

func (r *PgxRevenueRealizationRepository) MonthTotals(ctx context.Context, year, month int) (map[int64]decimal.Decimal, error) {
	query := `
        SELECT company_id, COALESCE(SUM(amount), 0)
        FROM revenue_realizations
        WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
        GROUP BY company_id;
    `
	return r.scanCompanyAmounts(ctx, query, year, month)
}

func (r *PgxRevenueRealizationRepository) AmountsOnDate(ctx context.Context, date time.Time) (map[int64]decimal.Decimal, error) {
	query := `
        SELECT company_id, COALESCE(SUM(amount), 0)
        FROM revenue_realizations
        WHERE date = $1
        GROUP BY company_id;
    `
	return r.scanCompanyAmounts(ctx, query, date)
}

func (r *PgxRevenueRealizationRepository) scanCompanyAmounts(ctx context.Context, query string, args ...any) (map[int64]decimal.Decimal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query realization amounts: %w", err)
	}
	defer rows.Close()

	amounts := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var companyID int64
		var amount decimal.Decimal
		if err := rows.Scan(&companyID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan realization amount: %w", err)
		}
		amounts[companyID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating realization amounts: %w", err)
	}
	return amounts, nil
}

func (r *PgxRevenueRealizationRepository) DailyAmounts(ctx context.Context, year, month int) ([]domain.CompanyDayAmount, error) {
	query := `
        SELECT company_id, EXTRACT(DAY FROM date)::int AS day, COALESCE(SUM(amount), 0)
        FROM revenue_realizations
        WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
        GROUP BY company_id, day
        ORDER BY company_id ASC, day ASC;
    `
	rows, err := r.Pool.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily realization amounts: %w", err)
	}
	defer rows.Close()

	var amounts []domain.CompanyDayAmount
	for rows.Next() {
		var a domain.CompanyDayAmount
		if err := rows.Scan(&a.CompanyID, &a.Day, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan daily realization amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily realization amounts: %w", err)
	}
	return amounts, nil
}

func (r *PgxRevenueRealizationRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.CompanyMonthAmount, error) {
	query := `
        SELECT company_id, EXTRACT(MONTH FROM date)::int AS month, COALESCE(SUM(amount), 0)
        FROM revenue_realizations
        WHERE EXTRACT(YEAR FROM date) = $1
        GROUP BY company_id, month
        ORDER BY company_id ASC, month ASC;
    `
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly realization totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CompanyMonthAmount
	for rows.Next() {
		var t domain.CompanyMonthAmount
		if err := rows.Scan(&t.CompanyID, &t.Month, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly realization total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly realization totals: %w", err)
	}
	return totals, nil
}

func (r *PgxRevenueRealizationRepository) DeleteByDescriptionForYear(ctx context.Context, year int, description string) (int64, error) {
	query := `
        DELETE FROM revenue_realizations
        WHERE EXTRACT(YEAR FROM date) = $1 AND description = $2;
    `
	tag, err := r.Pool.Exec(ctx, query, year, description)
	if err != nil {
		return 0, fmt.Errorf("failed to delete marked realizations: %w", err)
	}
	return tag.RowsAffected(), nil
}
