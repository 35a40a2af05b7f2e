package service

import (
	"context"
	"database/sql"

	"github.com/tagrapport/tagrapport/internal/domain"
	"github.com/tagrapport/tagrapport/internal/store"
)

// CompanyService serves the tenant's own company record and its inspectors
// and departments.
type CompanyService struct {
	companies   *store.CompanyStore
	departments *store.DepartmentStore
	inspectors  *store.InspectorStore
}

func NewCompanyService(database *sql.DB) *CompanyService {
	return &CompanyService{
		companies:   store.NewCompanyStore(database),
		departments: store.NewDepartmentStore(database),
		inspectors:  store.NewInspectorStore(database),
	}
}

// Info returns the company with its parent group and departments attached.
func (s *CompanyService) Info(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companies.GetWithParentGroup(ctx, companyID)
	if err != nil {
		return nil, err
	}

	departments, err := s.departments.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company.Departments = departments
	return company, nil
}

func (s *CompanyService) Inspectors(ctx context.Context, companyID string) ([]*domain.Inspector, error) {
	return s.inspectors.ListByCompany(ctx, companyID)
}

func (s *CompanyService) Departments(ctx context.Context, companyID string) ([]*domain.Department, error) {
	return s.departments.ListByCompany(ctx, companyID)
}
