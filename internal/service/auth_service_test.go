package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagrapport/tagrapport/internal/domain"
)

func TestRegisterBootstrapsTenant(t *testing.T) {
	env := newTestEnv(t, "ABC")
	ctx := context.Background()

	companies := NewCompanyService(env.db)

	info, err := companies.Info(ctx, env.company.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC Roofing", info.Name)
	require.NotNil(t, info.ParentGroup)
	assert.Equal(t, "ABC Roofing Group", info.ParentGroup.Name)

	require.Len(t, info.Departments, 2)
	codes := []string{info.Departments[0].Code, info.Departments[1].Code}
	assert.ElementsMatch(t, []string{"RES", "COM"}, codes)

	inspectors, err := companies.Inspectors(ctx, env.company.ID)
	require.NoError(t, err)
	require.Len(t, inspectors, 1)
	assert.Equal(t, "INS-001-ABC", inspectors[0].Code)
	assert.Equal(t, "Jan Hansen", inspectors[0].Name)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, "ABC")

	_, err := env.auth.Register(context.Background(), RegisterInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 5)
}

func TestRegisterDuplicateCompanyCode(t *testing.T) {
	env := newTestEnv(t, "ABC")

	_, err := env.auth.Register(context.Background(), RegisterInput{
		CompanyName: "Other Roofing",
		CompanyCode: "ABC",
		AdminName:   "Someone Else",
		Email:       "other@example.com",
		Password:    "hunter22",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "companyCode", verr.Fields[0].Field)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, "ABC")

	_, err := env.auth.Register(context.Background(), RegisterInput{
		CompanyName: "Other Roofing",
		CompanyCode: "XYZ",
		AdminName:   "Someone Else",
		Email:       "admin@ABC.example",
		Password:    "hunter22",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "email", verr.Fields[0].Field)
}

func TestResolveAPIToken(t *testing.T) {
	env := newTestEnv(t, "ABC")
	ctx := context.Background()

	// Company segment alone is enough.
	identity, err := env.auth.ResolveAPIToken(ctx, "ABC")
	require.NoError(t, err)
	assert.Equal(t, env.company.ID, identity.Company.ID)
	assert.Nil(t, identity.Inspector)

	// Inspector segment attaches the inspector.
	identity, err = env.auth.ResolveAPIToken(ctx, "ABC:INS-001-ABC")
	require.NoError(t, err)
	require.NotNil(t, identity.Inspector)
	assert.Equal(t, "INS-001-ABC", identity.Inspector.Code)

	// Unknown inspector code is non-fatal.
	identity, err = env.auth.ResolveAPIToken(ctx, "ABC:INS-999-ABC")
	require.NoError(t, err)
	assert.Nil(t, identity.Inspector)

	// Unknown company is fatal.
	_, err = env.auth.ResolveAPIToken(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.auth.ResolveAPIToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t, "ABC")
	ctx := context.Background()

	token, err := env.auth.Login(ctx, "admin@ABC.example", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := env.auth.VerifyLoginToken(token)
	require.NoError(t, err)

	user, err := env.auth.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "admin@ABC.example", user.Email)
	assert.Equal(t, "admin", user.Role)
	require.NotNil(t, user.Company)
	assert.Equal(t, "ABC", user.Company.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t, "ABC")
	ctx := context.Background()

	_, err := env.auth.Login(ctx, "admin@ABC.example", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyLoginTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t, "ABC")

	_, err := env.auth.VerifyLoginToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
