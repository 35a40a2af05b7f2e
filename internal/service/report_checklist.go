package service

import (
	"context"
	"errors"

	"github.com/tagrapport/tagrapport/internal/domain"
)

// ChecklistInput carries a checklist upsert. Nil fields are left at their
// current value (or their default on first creation).
type ChecklistInput struct {
	AccessConditions       *string `json:"accessConditions,omitempty"`
	AccessComments         *string `json:"accessComments,omitempty"`
	FallProtection         *string `json:"fallProtection,omitempty"`
	FallProtectionComments *string `json:"fallProtectionComments,omitempty"`
	NoxTreatment           *string `json:"noxTreatment,omitempty"`
	RainwaterCollection    *string `json:"rainwaterCollection,omitempty"`
	RecreationalAreas      *string `json:"recreationalAreas,omitempty"`

	ExistingRoofMaterial   *string  `json:"existingRoofMaterial,omitempty"`
	RoofAge                *float64 `json:"roofAge,omitempty"`
	RoofArea               *float64 `json:"roofArea,omitempty"`
	TechnicalExecution     *string  `json:"technicalExecution,omitempty"`
	Welds                  *string  `json:"welds,omitempty"`
	Drainage               *string  `json:"drainage,omitempty"`
	EdgesAndCrowns         *string  `json:"edgesAndCrowns,omitempty"`
	Skylights              *string  `json:"skylights,omitempty"`
	TechnicalInstallations *string  `json:"technicalInstallations,omitempty"`
	InsulationType         *string  `json:"insulationType,omitempty"`
	GreenRoof              *string  `json:"greenRoof,omitempty"`
	SolarPanels            *string  `json:"solarPanels,omitempty"`
}

// UpsertChecklist creates the report's checklist when absent, otherwise
// overwrites the supplied fields. The five status fields always end up with a
// valid enum value: IKKE_RELEVANT whenever nothing else has been set.
func (s *ReportService) UpsertChecklist(ctx context.Context, companyID, reportID string, in ChecklistInput) (*domain.Checklist, error) {
	if _, err := s.reports.GetByID(ctx, companyID, reportID); err != nil {
		return nil, err
	}

	checklist, err := s.checklists.GetByReportID(ctx, reportID)
	creating := errors.Is(err, domain.ErrNotFound)
	if err != nil && !creating {
		return nil, err
	}
	if creating {
		checklist = &domain.Checklist{ReportID: reportID}
	}

	if err := applyChecklistInput(checklist, in); err != nil {
		return nil, err
	}
	applyChecklistDefaults(checklist)

	if creating {
		return s.checklists.Create(ctx, checklist)
	}
	return s.checklists.Update(ctx, checklist)
}

func applyChecklistInput(c *domain.Checklist, in ChecklistInput) error {
	statusFields := []struct {
		name string
		in   *string
		out  *domain.ChecklistStatus
	}{
		{"accessConditions", in.AccessConditions, &c.AccessConditions},
		{"fallProtection", in.FallProtection, &c.FallProtection},
		{"noxTreatment", in.NoxTreatment, &c.NoxTreatment},
		{"rainwaterCollection", in.RainwaterCollection, &c.RainwaterCollection},
		{"recreationalAreas", in.RecreationalAreas, &c.RecreationalAreas},
	}
	for _, f := range statusFields {
		if f.in == nil {
			continue
		}
		status := domain.ChecklistStatus(*f.in)
		if !status.Valid() {
			return domain.Invalid(f.name, "invalid checklist status")
		}
		*f.out = status
	}

	textFields := []struct {
		in  *string
		out *string
	}{
		{in.AccessComments, &c.AccessComments},
		{in.FallProtectionComments, &c.FallProtectionComments},
		{in.ExistingRoofMaterial, &c.ExistingRoofMaterial},
		{in.TechnicalExecution, &c.TechnicalExecution},
		{in.Welds, &c.Welds},
		{in.Drainage, &c.Drainage},
		{in.EdgesAndCrowns, &c.EdgesAndCrowns},
		{in.Skylights, &c.Skylights},
		{in.TechnicalInstallations, &c.TechnicalInstallations},
		{in.InsulationType, &c.InsulationType},
		{in.GreenRoof, &c.GreenRoof},
		{in.SolarPanels, &c.SolarPanels},
	}
	for _, f := range textFields {
		if f.in != nil {
			*f.out = *f.in
		}
	}

	if in.RoofAge != nil {
		c.RoofAge = *in.RoofAge
	}
	if in.RoofArea != nil {
		c.RoofArea = *in.RoofArea
	}
	return nil
}

// applyChecklistDefaults backfills the five status fields on every upsert so
// the record is always fully populated on them.
func applyChecklistDefaults(c *domain.Checklist) {
	for _, f := range []*domain.ChecklistStatus{
		&c.AccessConditions,
		&c.FallProtection,
		&c.NoxTreatment,
		&c.RainwaterCollection,
		&c.RecreationalAreas,
	} {
		if *f == "" {
			*f = domain.ChecklistNotRelevant
		}
	}
}
