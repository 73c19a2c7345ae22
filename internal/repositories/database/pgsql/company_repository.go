package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) ListActiveCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `
        SELECT company_id, name, code, is_active
        FROM companies
        WHERE is_active = TRUE
        ORDER BY company_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.Code, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	query := `
        SELECT company_id, name, code, is_active
        FROM companies
        WHERE company_id = $1;
    `
	var c domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(&c.CompanyID, &c.Name, &c.Code, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %d: %w", companyID, err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) EnsureCompany(ctx context.Context, name, code string) error {
	query := `
        INSERT INTO companies (name, code, is_active)
        VALUES ($1, $2, TRUE)
        ON CONFLICT (code) DO NOTHING;
    `
	if _, err := r.Pool.Exec(ctx, query, name, code); err != nil {
		return fmt.Errorf("failed to ensure company %s: %w", code, err)
	}
	return nil
}
