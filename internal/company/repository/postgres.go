package repository

import (
	"context"
	"database/sql"

	"alumni-network/backend/internal/company/domain"
)

// PostgresCompanyRepository implements CompanyRepository on Postgres.
type PostgresCompanyRepository struct {
	db *sql.DB
}

// NewPostgresCompanyRepository returns a Postgres-backed company repository.
func NewPostgresCompanyRepository(db *sql.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, logo_url) VALUES ($1, $2, $3)`,
		company.ID, company.Name, company.LogoURL,
	)
	return err
}

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo_url FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.LogoURL); err != nil {
			return nil, err
		}
		companies = append(companies, &company)
	}
	return companies, rows.Err()
}
