package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateForcesRoleAndHashesPassword(t *testing.T) {
	ctx := context.Background()
	d, store := memoryDeps(t)
	svc := services.NewUserService(d, testHasher())

	u, err := svc.Create(ctx, models.UserInput{
		FullName: ptr("Ana Ruiz"), DateOfBirth: ptr("20-05-90"), Email: ptr("ana@example.com"),
		Password: ptr("secret1"), Role: ptr(models.RoleAdmin), AccountEnabled: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.AccountEnabled)
	_, err = time.Parse(time.RFC3339, u.CreatedAt)
	assert.NoError(t, err)

	doc, err := store.Get(ctx, models.CollectionUsers, u.ID)
	require.NoError(t, err)
	hash, _ := doc.Fields["password"].(string)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, testHasher().Verify("secret1", hash))

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}

func TestUserService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	d, _ := memoryDeps(t)
	svc := services.NewUserService(d, testHasher())
	ana := registerUser(t, svc, "ana@example.com", "secret1")
	bob := registerUser(t, svc, "bob@example.com", "secret1")

	_, err := svc.Create(ctx, models.UserInput{
		FullName: ptr("Other Ana"), DateOfBirth: ptr("01-01-80"), Email: ptr("Ana@Example.com"), Password: ptr("secret1"),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	_, err = svc.Update(ctx, bob.ID, models.UserInput{Email: ptr("ana@example.com")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	// keeping one's own email is not a conflict
	updated, err := svc.Update(ctx, ana.ID, models.UserInput{Email: ptr("ana@example.com"), Role: ptr(models.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUserService_GetByEmailAndSearch(t *testing.T) {
	ctx := context.Background()
	d, _ := memoryDeps(t)
	svc := services.NewUserService(d, testHasher())
	ana := registerUser(t, svc, "ana@example.com", "secret1")

	got, err := svc.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	found, err := svc.SearchByName(ctx, "ruiz")
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, ana.ID))
	_, err = svc.GetByID(ctx, ana.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
