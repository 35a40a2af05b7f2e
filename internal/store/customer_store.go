package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

// CustomerStore persists customers. Customers are shared records referenced
// by reports rather than owned by a tenant; tenant isolation is enforced at
// the report level.
type CustomerStore struct {
	db DBTX
}

func NewCustomerStore(db DBTX) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, address, city, state, zip_code, phone, email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, c.Name, c.Address, c.City, c.State, c.ZipCode, c.Phone, c.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *CustomerStore) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, address, city, state, zip_code, phone, email, created_at
		FROM customers WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Phone, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (s *CustomerStore) Update(ctx context.Context, id string, c *domain.Customer) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE customers SET name = ?, address = ?, city = ?, state = ?, zip_code = ?, phone = ?, email = ?
		WHERE id = ?
	`, c.Name, c.Address, c.City, c.State, c.ZipCode, c.Phone, c.Email, id)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
