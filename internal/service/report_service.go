package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/tagrapport/tagrapport/internal/db"
	"github.com/tagrapport/tagrapport/internal/domain"
	"github.com/tagrapport/tagrapport/internal/filestore"
	"github.com/tagrapport/tagrapport/internal/store"
)

// MaxImagesPerUpload caps the number of files accepted by one upload call.
const MaxImagesPerUpload = 10

// ReportService orchestrates the report lifecycle: creation with customer
// upsert, partial updates, checklist upserts, findings, and image
// attachments. Multi-entity writes run inside one transaction.
type ReportService struct {
	db          *sql.DB
	reports     *store.ReportStore
	departments *store.DepartmentStore
	inspectors  *store.InspectorStore
	customers   *store.CustomerStore
	checklists  *store.ChecklistStore
	findings    *store.FindingStore
	images      *store.ImageStore
	files       filestore.Store
	logger      *slog.Logger
}

func NewReportService(database *sql.DB, files filestore.Store, logger *slog.Logger) *ReportService {
	return &ReportService{
		db:          database,
		reports:     store.NewReportStore(database),
		departments: store.NewDepartmentStore(database),
		inspectors:  store.NewInspectorStore(database),
		customers:   store.NewCustomerStore(database),
		checklists:  store.NewChecklistStore(database),
		findings:    store.NewFindingStore(database),
		images:      store.NewImageStore(database),
		files:       files,
		logger:      logger,
	}
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ReportPage struct {
	Reports    []*domain.Report `json:"reports"`
	Pagination Pagination       `json:"pagination"`
}

// List returns one page of the tenant's reports, newest first, each fully
// hydrated.
func (s *ReportService) List(ctx context.Context, companyID string, page, limit int) (*ReportPage, error) {
	if page < 1 {
		return nil, domain.Invalid("page", "page must be a positive integer")
	}
	if limit < 1 || limit > 100 {
		return nil, domain.Invalid("limit", "limit must be between 1 and 100")
	}

	offset := (page - 1) * limit
	reports, err := s.reports.List(ctx, companyID, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.reports.Count(ctx, companyID)
	if err != nil {
		return nil, err
	}

	for _, r := range reports {
		if err := s.hydrate(ctx, r); err != nil {
			return nil, err
		}
	}
	if reports == nil {
		reports = []*domain.Report{}
	}

	pages := (total + limit - 1) / limit
	return &ReportPage{
		Reports:    reports,
		Pagination: Pagination{Total: total, Page: page, Limit: limit, Pages: pages},
	}, nil
}

func (s *ReportService) Get(ctx context.Context, companyID, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) GetByCode(ctx context.Context, companyID, code string) (*domain.Report, error) {
	report, err := s.reports.GetByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

type CustomerInput struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type CreateReportInput struct {
	InspectionDate string         `json:"inspectionDate"`
	InspectorID    string         `json:"inspectorId"`
	DepartmentID   string         `json:"departmentId"`
	Notes          string         `json:"notes,omitempty"`
	Customer       *CustomerInput `json:"customer"`
}

// Create validates the tenant-owned references, then creates (or updates) the
// customer and inserts the report inside a single transaction. Nothing is
// written when validation fails.
func (s *ReportService) Create(ctx context.Context, company *domain.Company, in CreateReportInput) (*domain.Report, error) {
	verr := &domain.ValidationError{}
	if in.InspectionDate == "" {
		verr.Add("inspectionDate", "inspection date is required")
	}
	if in.InspectorID == "" {
		verr.Add("inspectorId", "inspector ID is required")
	}
	if in.DepartmentID == "" {
		verr.Add("departmentId", "department ID is required")
	}
	if in.Customer == nil {
		verr.Add("customer", "customer is required")
	} else {
		if in.Customer.Name == "" {
			verr.Add("customer.name", "customer name is required")
		}
		if in.Customer.Address == "" {
			verr.Add("customer.address", "customer address is required")
		}
		if in.Customer.City == "" {
			verr.Add("customer.city", "customer city is required")
		}
		if in.Customer.ZipCode == "" {
			verr.Add("customer.zipCode", "customer ZIP code is required")
		}
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	inspectionDate, err := parseDate(in.InspectionDate)
	if err != nil {
		return nil, domain.Invalid("inspectionDate", "invalid date format")
	}

	if _, err := s.inspectors.GetByID(ctx, company.ID, in.InspectorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("inspectorId", "invalid inspector ID")
		}
		return nil, err
	}

	department, err := s.departments.GetByID(ctx, company.ID, in.DepartmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("departmentId", "invalid department ID")
		}
		return nil, err
	}

	var created *domain.Report
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		customers := store.NewCustomerStore(tx)
		reports := store.NewReportStore(tx)

		customerID := in.Customer.ID
		if customerID != "" {
			if err := customers.Update(ctx, customerID, customerRecord(in.Customer)); err != nil {
				return err
			}
		} else {
			customer, err := customers.Create(ctx, customerRecord(in.Customer))
			if err != nil {
				return err
			}
			customerID = customer.ID
		}

		report, err := reports.Create(ctx, &domain.Report{
			ReportCode:     generateReportCode(company.Code, department.Code),
			InspectionDate: inspectionDate,
			Notes:          in.Notes,
			Status:         domain.StatusDraft,
			CompanyID:      company.ID,
			DepartmentID:   department.ID,
			InspectorID:    in.InspectorID,
			CustomerID:     customerID,
		})
		if err != nil {
			return err
		}
		created = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("report created", "report_code", created.ReportCode, "company_id", company.ID)

	if err := s.hydrate(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// generateReportCode derives the human-readable code from the company and
// department codes plus the last six digits of the current epoch millis.
// Not collision-proof under sub-second concurrent creation; accepted.
func generateReportCode(companyCode, departmentCode string) string {
	suffix := time.Now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%s-%s-%06d", companyCode, departmentCode, suffix)
}

type UpdateReportInput struct {
	InspectionDate *string        `json:"inspectionDate,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	Status         *string        `json:"status,omitempty"`
	InspectorID    *string        `json:"inspectorId,omitempty"`
	DepartmentID   *string        `json:"departmentId,omitempty"`
	Customer       *CustomerInput `json:"customer,omitempty"`
}

// Update applies a partial update. A customer sub-object updates the report's
// currently linked customer; it cannot repoint the report elsewhere.
func (s *ReportService) Update(ctx context.Context, company *domain.Company, id string, in UpdateReportInput) (*domain.Report, error) {
	existing, err := s.reports.GetByID(ctx, company.ID, id)
	if err != nil {
		return nil, err
	}

	upd := store.ReportUpdate{Notes: in.Notes}

	if in.InspectionDate != nil {
		d, err := parseDate(*in.InspectionDate)
		if err != nil {
			return nil, domain.Invalid("inspectionDate", "invalid date format")
		}
		upd.InspectionDate = &d
	}
	if in.Status != nil {
		status := domain.ReportStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.Invalid("status", "invalid status")
		}
		upd.Status = &status
	}
	if in.InspectorID != nil {
		if _, err := s.inspectors.GetByID(ctx, company.ID, *in.InspectorID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("inspectorId", "invalid inspector ID")
			}
			return nil, err
		}
		upd.InspectorID = in.InspectorID
	}
	if in.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, company.ID, *in.DepartmentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("departmentId", "invalid department ID")
			}
			return nil, err
		}
		upd.DepartmentID = in.DepartmentID
	}

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if in.Customer != nil {
			customers := store.NewCustomerStore(tx)
			if err := customers.Update(ctx, existing.CustomerID, customerRecord(in.Customer)); err != nil {
				return err
			}
		}
		reports := store.NewReportStore(tx)
		return reports.Update(ctx, company.ID, id, upd)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, company.ID, id)
}

// Delete removes the report; the schema cascades findings, images, and the
// checklist. Stored image files are removed best-effort afterwards.
func (s *ReportService) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.reports.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	images, err := s.images.ListByReportAll(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reports.Delete(ctx, companyID, id); err != nil {
		return err
	}

	s.removeFiles(ctx, images)
	return nil
}

// removeFiles deletes stored files best-effort; failures are logged and never
// block the surrounding operation.
func (s *ReportService) removeFiles(ctx context.Context, images []*domain.Image) {
	for _, img := range images {
		if err := s.files.Delete(ctx, img.StorageKey); err != nil {
			s.logger.Error("failed to delete image file", "storage_key", img.StorageKey, "error", err)
		}
	}
}

func customerRecord(in *CustomerInput) *domain.Customer {
	return &domain.Customer{
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Phone:   in.Phone,
		Email:   in.Email,
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// hydrate attaches the report's inspector, department, customer, checklist,
// and findings with their images.
func (s *ReportService) hydrate(ctx context.Context, r *domain.Report) error {
	department, err := s.departments.GetByID(ctx, r.CompanyID, r.DepartmentID)
	if err != nil {
		return fmt.Errorf("failed to load department for report %s: %w", r.ID, err)
	}
	r.Department = department

	inspector, err := s.inspectors.GetByID(ctx, r.CompanyID, r.InspectorID)
	if err != nil {
		return fmt.Errorf("failed to load inspector for report %s: %w", r.ID, err)
	}
	r.Inspector = inspector

	customer, err := s.customers.GetByID(ctx, r.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load customer for report %s: %w", r.ID, err)
	}
	r.Customer = customer

	checklist, err := s.checklists.GetByReportID(ctx, r.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to load checklist for report %s: %w", r.ID, err)
	}
	r.Checklist = checklist

	findings, err := s.findings.ListByReport(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("failed to load findings for report %s: %w", r.ID, err)
	}
	for _, f := range findings {
		images, err := s.images.ListByFinding(ctx, f.ID)
		if err != nil {
			return fmt.Errorf("failed to load images for finding %s: %w", f.ID, err)
		}
		for _, img := range images {
			img.URL = imageURL(img.StorageKey)
		}
		if images != nil {
			f.Images = images
		}
	}
	if findings == nil {
		findings = []*domain.Finding{}
	}
	r.Findings = findings
	return nil
}

// imageURL derives the public URL from the storage key's base name so the
// server's filesystem layout never appears in responses.
func imageURL(storageKey string) string {
	return "/uploads/" + path.Base(storageKey)
}
