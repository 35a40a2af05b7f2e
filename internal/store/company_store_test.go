package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagrapport/tagrapport/internal/domain"
)

func TestCompanyStoreGetByCode(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")
	store := NewCompanyStore(d)
	ctx := context.Background()

	got, err := store.GetByCode(ctx, "ABC")
	require.NoError(t, err)
	assert.Equal(t, tn.Company.ID, got.ID)

	_, err = store.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyStoreDuplicateCode(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")

	_, err := NewCompanyStore(d).Create(context.Background(), "Other Roofing", "ABC", tn.Company.ParentGroupID)
	assert.Error(t, err)
}

func TestCompanyStoreGetWithParentGroup(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")

	got, err := NewCompanyStore(d).GetWithParentGroup(context.Background(), tn.Company.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentGroup)
	assert.Equal(t, "ABC Group", got.ParentGroup.Name)
}

func TestDepartmentStoreTenantScoped(t *testing.T) {
	d := openTestDB(t)
	abc := seedTenant(t, d, "ABC")
	xyz := seedTenant(t, d, "XYZ")
	store := NewDepartmentStore(d)
	ctx := context.Background()

	got, err := store.GetByID(ctx, abc.Company.ID, abc.Department.ID)
	require.NoError(t, err)
	assert.Equal(t, "RES", got.Code)

	_, err = store.GetByID(ctx, xyz.Company.ID, abc.Department.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepartmentStoreListOrdered(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")
	store := NewDepartmentStore(d)
	ctx := context.Background()

	_, err := store.Create(ctx, tn.Company.ID, "Commercial", "COM")
	require.NoError(t, err)

	departments, err := store.ListByCompany(ctx, tn.Company.ID)
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "Commercial", departments[0].Name)
	assert.Equal(t, "Residential", departments[1].Name)
}

func TestInspectorStoreGetByCodeTenantScoped(t *testing.T) {
	d := openTestDB(t)
	abc := seedTenant(t, d, "ABC")
	xyz := seedTenant(t, d, "XYZ")
	store := NewInspectorStore(d)
	ctx := context.Background()

	got, err := store.GetByCode(ctx, abc.Company.ID, "INS-001-ABC")
	require.NoError(t, err)
	assert.Equal(t, abc.Inspector.ID, got.ID)

	_, err = store.GetByCode(ctx, xyz.Company.ID, "INS-001-ABC")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthUserStoreGetByEmail(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")
	store := NewAuthUserStore(d)
	ctx := context.Background()

	created, err := store.Create(ctx, tn.Company.ID, "admin@abc.example", "hash", "admin")
	require.NoError(t, err)

	got, err := store.GetByEmail(ctx, "admin@abc.example")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "admin", got.Role)

	_, err = store.GetByEmail(ctx, "nobody@abc.example")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	tn := seedTenant(t, d, "ABC")
	store := NewCustomerStore(d)
	ctx := context.Background()

	err := store.Update(ctx, tn.Customer.ID, &domain.Customer{
		Name:    "Renamed Association",
		Address: "Tagvej 2",
		City:    "Aarhus",
		ZipCode: "8000",
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, tn.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Association", got.Name)
	assert.Equal(t, "Tagvej 2", got.Address)

	err = store.Update(ctx, "no-such-customer", &domain.Customer{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
