package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tagrapport/tagrapport/internal/domain"
)

type ChecklistStore struct {
	db DBTX
}

func NewChecklistStore(db DBTX) *ChecklistStore {
	return &ChecklistStore{db: db}
}

const checklistColumns = `id, report_id,
	access_conditions, access_comments, fall_protection, fall_protection_comments,
	nox_treatment, rainwater_collection, recreational_areas,
	existing_roof_material, roof_age, roof_area, technical_execution, welds,
	drainage, edges_and_crowns, skylights, technical_installations,
	insulation_type, green_roof, solar_panels, created_at, updated_at`

func (s *ChecklistStore) scan(row *sql.Row) (*domain.Checklist, error) {
	c := &domain.Checklist{}
	err := row.Scan(&c.ID, &c.ReportID,
		&c.AccessConditions, &c.AccessComments, &c.FallProtection, &c.FallProtectionComments,
		&c.NoxTreatment, &c.RainwaterCollection, &c.RecreationalAreas,
		&c.ExistingRoofMaterial, &c.RoofAge, &c.RoofArea, &c.TechnicalExecution, &c.Welds,
		&c.Drainage, &c.EdgesAndCrowns, &c.Skylights, &c.TechnicalInstallations,
		&c.InsulationType, &c.GreenRoof, &c.SolarPanels, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	return c, nil
}

func (s *ChecklistStore) GetByReportID(ctx context.Context, reportID string) (*domain.Checklist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+checklistColumns+` FROM checklists WHERE report_id = ?`, reportID)
	return s.scan(row)
}

func (s *ChecklistStore) Create(ctx context.Context, c *domain.Checklist) (*domain.Checklist, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklists (id, report_id,
			access_conditions, access_comments, fall_protection, fall_protection_comments,
			nox_treatment, rainwater_collection, recreational_areas,
			existing_roof_material, roof_age, roof_area, technical_execution, welds,
			drainage, edges_and_crowns, skylights, technical_installations,
			insulation_type, green_roof, solar_panels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, c.ReportID,
		c.AccessConditions, c.AccessComments, c.FallProtection, c.FallProtectionComments,
		c.NoxTreatment, c.RainwaterCollection, c.RecreationalAreas,
		c.ExistingRoofMaterial, c.RoofAge, c.RoofArea, c.TechnicalExecution, c.Welds,
		c.Drainage, c.EdgesAndCrowns, c.Skylights, c.TechnicalInstallations,
		c.InsulationType, c.GreenRoof, c.SolarPanels)
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}
	return s.GetByReportID(ctx, c.ReportID)
}

func (s *ChecklistStore) Update(ctx context.Context, c *domain.Checklist) (*domain.Checklist, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE checklists SET
			access_conditions = ?, access_comments = ?, fall_protection = ?, fall_protection_comments = ?,
			nox_treatment = ?, rainwater_collection = ?, recreational_areas = ?,
			existing_roof_material = ?, roof_age = ?, roof_area = ?, technical_execution = ?, welds = ?,
			drainage = ?, edges_and_crowns = ?, skylights = ?, technical_installations = ?,
			insulation_type = ?, green_roof = ?, solar_panels = ?,
			updated_at = datetime('now')
		WHERE report_id = ?
	`, c.AccessConditions, c.AccessComments, c.FallProtection, c.FallProtectionComments,
		c.NoxTreatment, c.RainwaterCollection, c.RecreationalAreas,
		c.ExistingRoofMaterial, c.RoofAge, c.RoofArea, c.TechnicalExecution, c.Welds,
		c.Drainage, c.EdgesAndCrowns, c.Skylights, c.TechnicalInstallations,
		c.InsulationType, c.GreenRoof, c.SolarPanels,
		c.ReportID)
	if err != nil {
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetByReportID(ctx, c.ReportID)
}
