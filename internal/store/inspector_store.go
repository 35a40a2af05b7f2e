package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type InspectorStore struct {
	db DBTX
}

func NewInspectorStore(db DBTX) *InspectorStore {
	return &InspectorStore{db: db}
}

func (s *InspectorStore) Create(ctx context.Context, companyID, name, code, email, phone string) (*domain.Inspector, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspectors (id, name, code, email, phone, company_id) VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, code, email, phone, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspector: %w", err)
	}
	return s.GetByID(ctx, companyID, id)
}

const inspectorColumns = `id, name, code, email, phone, company_id, created_at`

func (s *InspectorStore) GetByID(ctx context.Context, companyID, id string) (*domain.Inspector, error) {
	return s.getWhere(ctx, companyID, "id", id)
}

// GetByCode resolves the inspector segment of a tenant credential, scoped to
// the already-resolved company.
func (s *InspectorStore) GetByCode(ctx context.Context, companyID, code string) (*domain.Inspector, error) {
	return s.getWhere(ctx, companyID, "code", code)
}

func (s *InspectorStore) getWhere(ctx context.Context, companyID, column, value string) (*domain.Inspector, error) {
	i := &domain.Inspector{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+inspectorColumns+` FROM inspectors WHERE `+column+` = ? AND company_id = ?`,
		value, companyID,
	).Scan(&i.ID, &i.Name, &i.Code, &i.Email, &i.Phone, &i.CompanyID, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inspector: %w", err)
	}
	return i, nil
}

func (s *InspectorStore) ListByCompany(ctx context.Context, companyID string) ([]*domain.Inspector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+inspectorColumns+` FROM inspectors WHERE company_id = ? ORDER BY name ASC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspectors: %w", err)
	}
	defer rows.Close()

	var inspectors []*domain.Inspector
	for rows.Next() {
		i := &domain.Inspector{}
		if err := rows.Scan(&i.ID, &i.Name, &i.Code, &i.Email, &i.Phone, &i.CompanyID, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspector: %w", err)
		}
		inspectors = append(inspectors, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspectors: %w", err)
	}
	return inspectors, nil
}
