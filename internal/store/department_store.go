package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type DepartmentStore struct {
	db DBTX
}

func NewDepartmentStore(db DBTX) *DepartmentStore {
	return &DepartmentStore{db: db}
}

func (s *DepartmentStore) Create(ctx context.Context, companyID, name, code string) (*domain.Department, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departments (id, name, code, company_id) VALUES (?, ?, ?, ?)
	`, id, name, code, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return s.GetByID(ctx, companyID, id)
}

// GetByID is tenant-scoped: an id belonging to another company scans as no
// rows and surfaces as ErrNotFound.
func (s *DepartmentStore) GetByID(ctx context.Context, companyID, id string) (*domain.Department, error) {
	d := &domain.Department{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, code, company_id, created_at FROM departments
		WHERE id = ? AND company_id = ?
	`, id, companyID).Scan(&d.ID, &d.Name, &d.Code, &d.CompanyID, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (s *DepartmentStore) ListByCompany(ctx context.Context, companyID string) ([]*domain.Department, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, code, company_id, created_at FROM departments
		WHERE company_id = ? ORDER BY name ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		d := &domain.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.CompanyID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}
	return departments, nil
}
