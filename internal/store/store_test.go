package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tagrapport/tagrapport/internal/db"
	"github.com/tagrapport/tagrapport/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// tenant is a fully seeded company with one department, one inspector, and
// one customer, ready to hang reports off.
type tenant struct {
	Company    *domain.Company
	Department *domain.Department
	Inspector  *domain.Inspector
	Customer   *domain.Customer
}

func seedTenant(t *testing.T, d *sql.DB, code string) *tenant {
	t.Helper()
	ctx := context.Background()

	companies := NewCompanyStore(d)
	group, err := companies.CreateParentGroup(ctx, code+" Group", code)
	require.NoError(t, err)
	company, err := companies.Create(ctx, code+" Roofing", code, group.ID)
	require.NoError(t, err)

	department, err := NewDepartmentStore(d).Create(ctx, company.ID, "Residential", "RES")
	require.NoError(t, err)

	inspector, err := NewInspectorStore(d).Create(ctx, company.ID, "Jan Hansen", "INS-001-"+code, "jan@"+code+".example", "")
	require.NoError(t, err)

	customer, err := NewCustomerStore(d).Create(ctx, &domain.Customer{
		Name:    "Beboerforeningen " + code,
		Address: "Tagvej 1",
		City:    "Aarhus",
		ZipCode: "8000",
	})
	require.NoError(t, err)

	return &tenant{Company: company, Department: department, Inspector: inspector, Customer: customer}
}

func seedReport(t *testing.T, d *sql.DB, tn *tenant, code string) *domain.Report {
	t.Helper()
	report, err := NewReportStore(d).Create(context.Background(), &domain.Report{
		ReportCode:     code,
		InspectionDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:         domain.StatusDraft,
		CompanyID:      tn.Company.ID,
		DepartmentID:   tn.Department.ID,
		InspectorID:    tn.Inspector.ID,
		CustomerID:     tn.Customer.ID,
	})
	require.NoError(t, err)
	return report
}
