package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tagrapport/tagrapport/internal/db"
	"github.com/tagrapport/tagrapport/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFiles is an in-memory filestore so service tests never touch disk.
type fakeFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	counter int
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string][]byte{}}
}

func (f *fakeFiles) Save(_ context.Context, prefix, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	key := fmt.Sprintf("%s_%d%s", prefix, f.counter, filepath.Ext(filename))
	f.files[key] = data
	return key, nil
}

func (f *fakeFiles) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[key]
	if !ok {
		return nil, "", fmt.Errorf("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[key]; !ok {
		return fmt.Errorf("file not found")
	}
	delete(f.files, key)
	return nil
}

func (f *fakeFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// flakyFiles delegates to a fakeFiles but fails the Nth Save call.
type flakyFiles struct {
	*fakeFiles
	failOn int
	calls  int
}

func (f *flakyFiles) Save(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	f.calls++
	if f.calls == f.failOn {
		return "", fmt.Errorf("disk full")
	}
	return f.fakeFiles.Save(ctx, prefix, filename, r)
}

// testEnv bundles a fresh database with the services under test and one
// registered tenant.
type testEnv struct {
	db      *sql.DB
	files   *fakeFiles
	auth    *AuthService
	reports *ReportService
	company *domain.Company
}

func newTestEnv(t *testing.T, companyCode string) *testEnv {
	t.Helper()

	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	logger := testLogger()
	files := newFakeFiles()

	env := &testEnv{
		db:      d,
		files:   files,
		auth:    NewAuthService(d, "test-secret", time.Hour, logger),
		reports: NewReportService(d, files, logger),
	}

	_, err = env.auth.Register(context.Background(), RegisterInput{
		CompanyName: companyCode + " Roofing",
		CompanyCode: companyCode,
		AdminName:   "Jan Hansen",
		Email:       "admin@" + companyCode + ".example",
		Password:    "hunter22",
	})
	require.NoError(t, err)

	identity, err := env.auth.ResolveAPIToken(context.Background(), companyCode)
	require.NoError(t, err)
	env.company = identity.Company

	return env
}

// addTenant registers a second company in the same database so cross-tenant
// behavior can be exercised.
func (env *testEnv) addTenant(t *testing.T, companyCode string) *domain.Company {
	t.Helper()

	_, err := env.auth.Register(context.Background(), RegisterInput{
		CompanyName: companyCode + " Roofing",
		CompanyCode: companyCode,
		AdminName:   "Pia Larsen",
		Email:       "admin@" + companyCode + ".example",
		Password:    "hunter22",
	})
	require.NoError(t, err)

	identity, err := env.auth.ResolveAPIToken(context.Background(), companyCode)
	require.NoError(t, err)
	return identity.Company
}

// newReport creates a report through the service using the tenant's default
// department and inspector.
func (env *testEnv) newReport(t *testing.T) *domain.Report {
	return env.newReportFor(t, env.company)
}

func (env *testEnv) newReportFor(t *testing.T, company *domain.Company) *domain.Report {
	t.Helper()
	ctx := context.Background()

	identity, err := env.auth.ResolveAPIToken(ctx, company.Code+":INS-001-"+company.Code)
	require.NoError(t, err)
	require.NotNil(t, identity.Inspector)

	departments, err := NewCompanyService(env.db).Departments(ctx, company.ID)
	require.NoError(t, err)
	require.NotEmpty(t, departments)

	var department *domain.Department
	for _, dep := range departments {
		if dep.Code == "RES" {
			department = dep
		}
	}
	require.NotNil(t, department)

	report, err := env.reports.Create(ctx, company, CreateReportInput{
		InspectionDate: "2026-03-15",
		InspectorID:    identity.Inspector.ID,
		DepartmentID:   department.ID,
		Customer: &CustomerInput{
			Name:    "Beboerforeningen Solgaarden",
			Address: "Tagvej 1",
			City:    "Aarhus",
			ZipCode: "8000",
		},
	})
	require.NoError(t, err)
	return report
}

func (env *testEnv) newFinding(t *testing.T, reportID string) *domain.Finding {
	t.Helper()
	finding, err := env.reports.CreateFinding(context.Background(), env.company.ID, reportID, FindingInput{
		Title:    "Cracked membrane",
		Severity: "HIGH",
	})
	require.NoError(t, err)
	return finding
}
