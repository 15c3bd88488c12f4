// Package repository provides persistence for companies.
package repository

import (
	"context"

	"alumni-network/backend/internal/company/domain"
)

// CompanyRepository stores companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	List(ctx context.Context) ([]*domain.Company, error)
}
