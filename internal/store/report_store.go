package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type ReportStore struct {
	db DBTX
}

func NewReportStore(db DBTX) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = `id, report_code, inspection_date, notes, status,
	company_id, department_id, inspector_id, customer_id, created_at, updated_at`

func (s *ReportStore) Create(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, report_code, inspection_date, notes, status,
			company_id, department_id, inspector_id, customer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, r.ReportCode, r.InspectionDate, r.Notes, r.Status,
		r.CompanyID, r.DepartmentID, r.InspectorID, r.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return s.GetByID(ctx, r.CompanyID, id)
}

// GetByID combines the id filter with the tenant filter so an id owned by
// another company scans as no rows.
func (s *ReportStore) GetByID(ctx context.Context, companyID, id string) (*domain.Report, error) {
	return s.getWhere(ctx, companyID, "id", id)
}

func (s *ReportStore) GetByCode(ctx context.Context, companyID, code string) (*domain.Report, error) {
	return s.getWhere(ctx, companyID, "report_code", code)
}

func (s *ReportStore) getWhere(ctx context.Context, companyID, column, value string) (*domain.Report, error) {
	r := &domain.Report{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE `+column+` = ? AND company_id = ?`,
		value, companyID,
	).Scan(&r.ID, &r.ReportCode, &r.InspectionDate, &r.Notes, &r.Status,
		&r.CompanyID, &r.DepartmentID, &r.InspectorID, &r.CustomerID, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r, nil
}

// List returns one page of the tenant's reports, newest first. The rowid
// tiebreak keeps ordering stable for rows created within the same second.
func (s *ReportStore) List(ctx context.Context, companyID string, offset, limit int) ([]*domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE company_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		r := &domain.Report{}
		if err := rows.Scan(&r.ID, &r.ReportCode, &r.InspectionDate, &r.Notes, &r.Status,
			&r.CompanyID, &r.DepartmentID, &r.InspectorID, &r.CustomerID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}

func (s *ReportStore) Count(ctx context.Context, companyID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reports WHERE company_id = ?`, companyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}

// ReportUpdate carries the fields of a partial update; nil fields are left
// untouched.
type ReportUpdate struct {
	InspectionDate *time.Time
	Notes          *string
	Status         *domain.ReportStatus
	InspectorID    *string
	DepartmentID   *string
}

func (s *ReportStore) Update(ctx context.Context, companyID, id string, u ReportUpdate) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if u.InspectionDate != nil {
		sets = append(sets, "inspection_date = ?")
		args = append(args, *u.InspectionDate)
	}
	if u.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *u.Notes)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *u.Status)
	}
	if u.InspectorID != nil {
		sets = append(sets, "inspector_id = ?")
		args = append(args, *u.InspectorID)
	}
	if u.DepartmentID != nil {
		sets = append(sets, "department_id = ?")
		args = append(args, *u.DepartmentID)
	}

	sets = append(sets, "updated_at = datetime('now')")
	args = append(args, id, companyID)

	result, err := s.db.ExecContext(ctx,
		`UPDATE reports SET `+strings.Join(sets, ", ")+` WHERE id = ? AND company_id = ?`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
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

func (s *ReportStore) Delete(ctx context.Context, companyID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE id = ? AND company_id = ?`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
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
