package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type ImageStore struct {
	db DBTX
}

func NewImageStore(db DBTX) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `i.id, i.filename, i.storage_key, i.mimetype, i.size, i.comment, i.severity, i.finding_id, i.created_at`

func (s *ImageStore) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (id, filename, storage_key, mimetype, size, comment, severity, finding_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, img.Filename, img.StorageKey, img.MimeType, img.Size, img.Comment, img.Severity, img.FindingID)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	out := &domain.Image{}
	err = s.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM images i WHERE i.id = ?`, id,
	).Scan(&out.ID, &out.Filename, &out.StorageKey, &out.MimeType, &out.Size,
		&out.Comment, &out.Severity, &out.FindingID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return out, nil
}

// GetByID resolves an image through finding and report to the tenant.
func (s *ImageStore) GetByID(ctx context.Context, companyID, id string) (*domain.Image, error) {
	img := &domain.Image{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+imageColumns+` FROM images i
		JOIN findings f ON f.id = i.finding_id
		JOIN reports r ON r.id = f.report_id
		WHERE i.id = ? AND r.company_id = ?
	`, id, companyID).Scan(&img.ID, &img.Filename, &img.StorageKey, &img.MimeType, &img.Size,
		&img.Comment, &img.Severity, &img.FindingID, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return img, nil
}

func (s *ImageStore) ListByFinding(ctx context.Context, findingID string) ([]*domain.Image, error) {
	return s.list(ctx,
		`SELECT `+imageColumns+` FROM images i WHERE i.finding_id = ? ORDER BY i.created_at ASC, i.rowid ASC`,
		findingID)
}

// ListByReport returns every image across the report's findings.
func (s *ImageStore) ListByReport(ctx context.Context, companyID, reportID string) ([]*domain.Image, error) {
	return s.list(ctx, `
		SELECT `+imageColumns+` FROM images i
		JOIN findings f ON f.id = i.finding_id
		JOIN reports r ON r.id = f.report_id
		WHERE f.report_id = ? AND r.company_id = ?
		ORDER BY i.created_at ASC, i.rowid ASC
	`, reportID, companyID)
}

func (s *ImageStore) list(ctx context.Context, query string, args ...any) ([]*domain.Image, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*domain.Image
	for rows.Next() {
		img := &domain.Image{}
		if err := rows.Scan(&img.ID, &img.Filename, &img.StorageKey, &img.MimeType, &img.Size,
			&img.Comment, &img.Severity, &img.FindingID, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return images, nil
}

// ListByReportAll returns the storage keys of every image under a report,
// used for best-effort file cleanup before the report row is deleted.
func (s *ImageStore) ListByReportAll(ctx context.Context, reportID string) ([]*domain.Image, error) {
	return s.list(ctx, `
		SELECT `+imageColumns+` FROM images i
		JOIN findings f ON f.id = i.finding_id
		WHERE f.report_id = ?
	`, reportID)
}

func (s *ImageStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
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
