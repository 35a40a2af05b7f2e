package service

import (
	"context"
	"fmt"
	"io"

	"github.com/tagrapport/tagrapport/internal/domain"
)

type FindingInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
}

// CreateFinding attaches a finding to a report owned by the tenant.
func (s *ReportService) CreateFinding(ctx context.Context, companyID, reportID string, in FindingInput) (*domain.Finding, error) {
	if _, err := s.reports.GetByID(ctx, companyID, reportID); err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	if in.Title == "" {
		verr.Add("title", "title is required")
	}
	severity := domain.Severity(in.Severity)
	if !severity.Valid() {
		verr.Add("severity", "invalid severity")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	return s.findings.Create(ctx, reportID, in.Title, in.Description, severity)
}

// DeleteFinding removes a finding that resolves through its report to the
// tenant, cascading its image records and cleaning stored files best-effort.
func (s *ReportService) DeleteFinding(ctx context.Context, companyID, reportID, findingID string) error {
	finding, err := s.findings.GetForReport(ctx, companyID, reportID, findingID)
	if err != nil {
		return err
	}

	images, err := s.images.ListByFinding(ctx, finding.ID)
	if err != nil {
		return err
	}

	if err := s.findings.Delete(ctx, finding.ID); err != nil {
		return err
	}

	s.removeFiles(ctx, images)
	return nil
}

// ImageUpload is one incoming multipart file.
type ImageUpload struct {
	Filename string
	MimeType string
	Size     int64
	Data     io.Reader
}

// AttachImages stores the uploaded files and persists one image record per
// file against the finding. The batch is all-or-nothing: a failure on any
// file unwinds the records and stored files already written for this call.
func (s *ReportService) AttachImages(ctx context.Context, companyID, reportID, findingID string, uploads []ImageUpload, comment, severity string) ([]*domain.Image, error) {
	if len(uploads) == 0 {
		return nil, domain.Invalid("images", "no files uploaded")
	}
	if len(uploads) > MaxImagesPerUpload {
		return nil, domain.Invalid("images", fmt.Sprintf("at most %d files per upload", MaxImagesPerUpload))
	}

	sev := domain.Severity(severity)
	if severity != "" && !sev.Valid() {
		return nil, domain.Invalid("severity", "invalid severity")
	}

	finding, err := s.findings.GetForReport(ctx, companyID, reportID, findingID)
	if err != nil {
		return nil, err
	}

	saved := make([]*domain.Image, 0, len(uploads))
	unwind := func() {
		for _, img := range saved {
			if err := s.images.Delete(ctx, img.ID); err != nil {
				s.logger.Error("failed to roll back image record", "image_id", img.ID, "error", err)
			}
			if err := s.files.Delete(ctx, img.StorageKey); err != nil {
				s.logger.Error("failed to roll back image file", "storage_key", img.StorageKey, "error", err)
			}
		}
	}

	for _, up := range uploads {
		key, err := s.files.Save(ctx, "finding_"+finding.ID, up.Filename, up.Data)
		if err != nil {
			unwind()
			return nil, fmt.Errorf("failed to store image file: %w", err)
		}

		img, err := s.images.Create(ctx, &domain.Image{
			Filename:   up.Filename,
			StorageKey: key,
			MimeType:   up.MimeType,
			Size:       up.Size,
			Comment:    comment,
			Severity:   sev,
			FindingID:  finding.ID,
		})
		if err != nil {
			if delErr := s.files.Delete(ctx, key); delErr != nil {
				s.logger.Error("failed to roll back image file", "storage_key", key, "error", delErr)
			}
			unwind()
			return nil, err
		}
		img.URL = imageURL(img.StorageKey)
		saved = append(saved, img)
	}

	s.logger.Info("images uploaded", "finding_id", finding.ID, "count", len(saved))
	return saved, nil
}

// ListImages returns every image across the report's findings.
func (s *ReportService) ListImages(ctx context.Context, companyID, reportID string) ([]*domain.Image, error) {
	if _, err := s.reports.GetByID(ctx, companyID, reportID); err != nil {
		return nil, err
	}

	images, err := s.images.ListByReport(ctx, companyID, reportID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		img.URL = imageURL(img.StorageKey)
	}
	if images == nil {
		images = []*domain.Image{}
	}
	return images, nil
}

// DeleteImage removes the stored file best-effort, then the record. A file
// that cannot be removed never blocks the record's deletion.
func (s *ReportService) DeleteImage(ctx context.Context, companyID, imageID string) error {
	img, err := s.images.GetByID(ctx, companyID, imageID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, img.StorageKey); err != nil {
		s.logger.Error("failed to delete image file", "storage_key", img.StorageKey, "error", err)
	}

	return s.images.Delete(ctx, img.ID)
}
