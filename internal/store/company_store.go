package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type CompanyStore struct {
	db DBTX
}

func NewCompanyStore(db DBTX) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) CreateParentGroup(ctx context.Context, name, code string) (*domain.ParentGroup, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parent_groups (id, name, code) VALUES (?, ?, ?)
	`, id, name, code)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent group: %w", err)
	}
	return s.getParentGroupByID(ctx, id)
}

func (s *CompanyStore) getParentGroupByID(ctx context.Context, id string) (*domain.ParentGroup, error) {
	pg := &domain.ParentGroup{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, code, created_at FROM parent_groups WHERE id = ?
	`, id).Scan(&pg.ID, &pg.Name, &pg.Code, &pg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent group: %w", err)
	}
	return pg, nil
}

func (s *CompanyStore) Create(ctx context.Context, name, code, parentGroupID string) (*domain.Company, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, code, parent_group_id) VALUES (?, ?, ?, ?)
	`, id, name, code, parentGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return s.GetByID(ctx, id)
}

const companyColumns = `id, name, code, address, phone, email, parent_group_id, created_at`

func (s *CompanyStore) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return s.getWhere(ctx, "id", id)
}

// GetByCode resolves a tenant credential's company segment. The code is
// globally unique.
func (s *CompanyStore) GetByCode(ctx context.Context, code string) (*domain.Company, error) {
	return s.getWhere(ctx, "code", code)
}

func (s *CompanyStore) getWhere(ctx context.Context, column, value string) (*domain.Company, error) {
	c := &domain.Company{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE `+column+` = ?`, value,
	).Scan(&c.ID, &c.Name, &c.Code, &c.Address, &c.Phone, &c.Email, &c.ParentGroupID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetWithParentGroup returns the company with its parent group attached.
func (s *CompanyStore) GetWithParentGroup(ctx context.Context, id string) (*domain.Company, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pg, err := s.getParentGroupByID(ctx, c.ParentGroupID)
	if err != nil {
		return nil, err
	}
	c.ParentGroup = pg
	return c, nil
}
