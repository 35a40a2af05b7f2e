package domain

import "time"

// ReportStatus is the lifecycle state of a report. The API accepts any member
// of the enum on update; the only UI-driven transition is DRAFT -> SUBMITTED.
type ReportStatus string

const (
	StatusDraft     ReportStatus = "DRAFT"
	StatusSubmitted ReportStatus = "SUBMITTED"
	StatusApproved  ReportStatus = "APPROVED"
	StatusRejected  ReportStatus = "REJECTED"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Severity grades a finding or an image annotation.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ChecklistStatus is the tri-state answer for checklist status fields.
type ChecklistStatus string

const (
	ChecklistNotRelevant    ChecklistStatus = "IKKE_RELEVANT"
	ChecklistNotEstablished ChecklistStatus = "IKKE_ETABLERET"
	ChecklistEstablished    ChecklistStatus = "ETABLERET"
)

func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistNotRelevant, ChecklistNotEstablished, ChecklistEstablished:
		return true
	}
	return false
}

type ParentGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

type Company struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Code          string        `json:"code"`
	Address       string        `json:"address,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Email         string        `json:"email,omitempty"`
	ParentGroupID string        `json:"parentGroupId"`
	ParentGroup   *ParentGroup  `json:"parentGroup,omitempty"`
	Departments   []*Department `json:"departments,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Inspector struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CompanyID    string    `json:"companyId"`
	Company      *Company  `json:"company,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zipCode"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Report struct {
	ID             string       `json:"id"`
	ReportCode     string       `json:"reportCode"`
	InspectionDate time.Time    `json:"inspectionDate"`
	Notes          string       `json:"notes,omitempty"`
	Status         ReportStatus `json:"status"`
	CompanyID      string       `json:"companyId"`
	DepartmentID   string       `json:"departmentId"`
	InspectorID    string       `json:"inspectorId"`
	CustomerID     string       `json:"customerId"`
	Department     *Department  `json:"department,omitempty"`
	Inspector      *Inspector   `json:"inspector,omitempty"`
	Customer       *Customer    `json:"customer,omitempty"`
	Checklist      *Checklist   `json:"checklist,omitempty"`
	Findings       []*Finding   `json:"findings"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Checklist is the structured questionnaire attached 1:1 to a report. The
// five ChecklistStatus fields are always populated after an upsert; the rest
// are free-text or numeric and may be empty.
type Checklist struct {
	ID       string `json:"id"`
	ReportID string `json:"reportId"`

	AccessConditions       ChecklistStatus `json:"accessConditions"`
	AccessComments         string          `json:"accessComments,omitempty"`
	FallProtection         ChecklistStatus `json:"fallProtection"`
	FallProtectionComments string          `json:"fallProtectionComments,omitempty"`
	NoxTreatment           ChecklistStatus `json:"noxTreatment"`
	RainwaterCollection    ChecklistStatus `json:"rainwaterCollection"`
	RecreationalAreas      ChecklistStatus `json:"recreationalAreas"`

	ExistingRoofMaterial   string  `json:"existingRoofMaterial,omitempty"`
	RoofAge                float64 `json:"roofAge,omitempty"`
	RoofArea               float64 `json:"roofArea,omitempty"`
	TechnicalExecution     string  `json:"technicalExecution,omitempty"`
	Welds                  string  `json:"welds,omitempty"`
	Drainage               string  `json:"drainage,omitempty"`
	EdgesAndCrowns         string  `json:"edgesAndCrowns,omitempty"`
	Skylights              string  `json:"skylights,omitempty"`
	TechnicalInstallations string  `json:"technicalInstallations,omitempty"`
	InsulationType         string  `json:"insulationType,omitempty"`
	GreenRoof              string  `json:"greenRoof,omitempty"`
	SolarPanels            string  `json:"solarPanels,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Finding struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    Severity  `json:"severity"`
	ReportID    string    `json:"reportId"`
	Images      []*Image  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Image is one uploaded file attached to a finding. StorageKey is the on-disk
// base name; URL is derived from it so the server's filesystem layout never
// leaks into responses.
type Image struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"-"`
	MimeType   string    `json:"mimetype"`
	Size       int64     `json:"size"`
	Comment    string    `json:"comment,omitempty"`
	Severity   Severity  `json:"severity,omitempty"`
	FindingID  string    `json:"findingId"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Identity is the result of resolving an x-api-token credential: the tenant
// company plus, when the credential named one, the acting inspector. The
// inspector is metadata only and never required for authorization.
type Identity struct {
	Company   *Company
	Inspector *Inspector
}
