package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
)

func strPtr(s string) *string { return &s }

func TestRegisterUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	in := models.RegisterUserRequest{Email: "ann@acme.com", Name: "Ann"}

	first, created, err := f.identity.RegisterUser(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotNil(t, first.InsertedID)

	second, created, err := f.identity.RegisterUser(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, second.InsertedID)

	users, err := f.identity.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAdminStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, _, err := f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "boss@acme.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, _, err = f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "dev@acme.com"})
	require.NoError(t, err)

	status, err := f.identity.AdminStatus(ctx, "boss@acme.com")
	require.NoError(t, err)
	assert.True(t, status.Admin)
	require.NotNil(t, status.User)
	assert.Equal(t, "boss@acme.com", status.User.Email)

	status, err = f.identity.AdminStatus(ctx, "dev@acme.com")
	require.NoError(t, err)
	assert.False(t, status.Admin)

	status, err = f.identity.AdminStatus(ctx, "nobody@acme.com")
	require.NoError(t, err)
	assert.False(t, status.Admin)
	assert.Nil(t, status.User)
}

func TestUpdatePackageAndProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, _, err := f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "boss@acme.com", Name: "Old"})
	require.NoError(t, err)

	res, err := f.identity.UpdatePackage(ctx, "boss@acme.com", models.Package{Name: "basic", MemberLimit: 5, Price: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	res, err = f.identity.UpdateProfile(ctx, "boss@acme.com", models.ProfileUpdate{Name: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	status, err := f.identity.AdminStatus(ctx, "boss@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "New", status.User.Name)
	require.NotNil(t, status.User.Package)
	assert.Equal(t, 5, status.User.Package.MemberLimit)
}

func TestUpdateProfileRejectsEmptyPatch(t *testing.T) {
	f := newFixture()
	_, err := f.identity.UpdateProfile(context.Background(), "a@acme.com", models.ProfileUpdate{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateProfileUnknownEmailMatchesNothing(t *testing.T) {
	f := newFixture()
	res, err := f.identity.UpdateProfile(context.Background(), "ghost@acme.com", models.ProfileUpdate{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{}, res)
}

func TestTeamMembership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	result, _, err := f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "dev@acme.com"})
	require.NoError(t, err)
	id := result.InsertedID.(primitive.ObjectID).Hex()

	res, err := f.identity.AddToTeam(ctx, "Acme", id, models.TeamUpdate{Company: strPtr("Acme"), TeamLead: strPtr("boss@acme.com")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	_, err = f.identity.RemoveFromTeam(ctx, "Acme", id, []string{"role"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.identity.RemoveFromTeam(ctx, "Acme", id, []string{"company", "teamLead"})
	require.NoError(t, err)

	status, err := f.identity.AdminStatus(ctx, "dev@acme.com")
	require.NoError(t, err)
	assert.Empty(t, status.User.Company)
	assert.Empty(t, status.User.TeamLead)
}

func TestInvalidObjectIDIsValidationError(t *testing.T) {
	f := newFixture()
	_, err := f.identity.AddToTeam(context.Background(), "Acme", "not-an-id", models.TeamUpdate{Company: strPtr("Acme")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTeamChangesStayInCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	result, _, err := f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "dev@globex.com", Company: "Globex"})
	require.NoError(t, err)
	id := result.InsertedID.(primitive.ObjectID).Hex()

	_, err = f.identity.AddToTeam(ctx, "Acme", id, models.TeamUpdate{TeamLead: strPtr("boss@acme.com")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.identity.RemoveFromTeam(ctx, "Acme", id, []string{"company"})
	assert.ErrorIs(t, err, ErrForbidden)

	fresh, _, err := f.identity.RegisterUser(ctx, models.RegisterUserRequest{Email: "new@acme.com"})
	require.NoError(t, err)
	_, err = f.identity.AddToTeam(ctx, "Acme", fresh.InsertedID.(primitive.ObjectID).Hex(), models.TeamUpdate{Company: strPtr("Globex")})
	assert.ErrorIs(t, err, ErrForbidden)

	status, err := f.identity.AdminStatus(ctx, "dev@globex.com")
	require.NoError(t, err)
	assert.Equal(t, "Globex", status.User.Company)
	assert.Empty(t, status.User.TeamLead)
}
