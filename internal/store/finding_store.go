package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type FindingStore struct {
	db DBTX
}

func NewFindingStore(db DBTX) *FindingStore {
	return &FindingStore{db: db}
}

const findingColumns = `f.id, f.title, f.description, f.severity, f.report_id, f.created_at`

func (s *FindingStore) Create(ctx context.Context, reportID, title, description string, severity domain.Severity) (*domain.Finding, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO findings (id, title, description, severity, report_id) VALUES (?, ?, ?, ?, ?)
	`, id, title, description, severity, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to create finding: %w", err)
	}

	f := &domain.Finding{}
	err = s.db.QueryRowContext(ctx,
		`SELECT `+findingColumns+` FROM findings f WHERE f.id = ?`, id,
	).Scan(&f.ID, &f.Title, &f.Description, &f.Severity, &f.ReportID, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get finding: %w", err)
	}
	f.Images = []*domain.Image{}
	return f, nil
}

// GetForReport resolves a finding through its report's tenant: a finding id
// from another company, or one attached to a different report, scans as no
// rows.
func (s *FindingStore) GetForReport(ctx context.Context, companyID, reportID, findingID string) (*domain.Finding, error) {
	f := &domain.Finding{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+findingColumns+` FROM findings f
		JOIN reports r ON r.id = f.report_id
		WHERE f.id = ? AND f.report_id = ? AND r.company_id = ?
	`, findingID, reportID, companyID).Scan(&f.ID, &f.Title, &f.Description, &f.Severity, &f.ReportID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finding: %w", err)
	}
	f.Images = []*domain.Image{}
	return f, nil
}

func (s *FindingStore) ListByReport(ctx context.Context, reportID string) ([]*domain.Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+findingColumns+` FROM findings f WHERE f.report_id = ? ORDER BY f.created_at ASC, f.rowid ASC`,
		reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	defer rows.Close()

	var findings []*domain.Finding
	for rows.Next() {
		f := &domain.Finding{Images: []*domain.Image{}}
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Severity, &f.ReportID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating findings: %w", err)
	}
	return findings, nil
}

func (s *FindingStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM findings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete finding: %w", err)
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
