package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type AuthUserStore struct {
	db DBTX
}

func NewAuthUserStore(db DBTX) *AuthUserStore {
	return &AuthUserStore{db: db}
}

func (s *AuthUserStore) Create(ctx context.Context, companyID, email, passwordHash, role string) (*domain.AuthUser, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_users (id, email, password_hash, role, company_id) VALUES (?, ?, ?, ?, ?)
	`, id, email, passwordHash, role, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth user: %w", err)
	}
	return s.GetByID(ctx, id)
}

const authUserColumns = `id, email, password_hash, role, company_id, created_at`

func (s *AuthUserStore) GetByID(ctx context.Context, id string) (*domain.AuthUser, error) {
	return s.getWhere(ctx, "id", id)
}

func (s *AuthUserStore) GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	return s.getWhere(ctx, "email", email)
}

func (s *AuthUserStore) getWhere(ctx context.Context, column, value string) (*domain.AuthUser, error) {
	u := &domain.AuthUser{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+authUserColumns+` FROM auth_users WHERE `+column+` = ?`, value,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CompanyID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth user: %w", err)
	}
	return u, nil
}
