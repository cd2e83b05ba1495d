package references_test

import (
	"testing"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/references"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ref, err := references.Resolve(models.ProductDescriptor{Kind: models.KindTea, ID: models.StringID("p1")})
	require.NoError(t, err)
	assert.Equal(t, models.Reference{Collection: "teasProducts", ID: models.StringID("p1"), Kind: models.KindTea}, ref)

	ref, err = references.Resolve(models.ProductDescriptor{Kind: models.KindCraft, ID: models.NumberID("7")})
	require.NoError(t, err)
	assert.Equal(t, "craftProducts", ref.Collection)
	assert.Equal(t, models.NumberID("7"), ref.ID)
	assert.True(t, ref.ID.IsNumber())
}

func TestResolve_UnknownKind(t *testing.T) {
	_, err := references.Resolve(models.ProductDescriptor{Kind: "coffee", ID: models.StringID("x")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReferenceKind)
}

func TestResolveAll_StopsAtFirstInvalid(t *testing.T) {
	_, err := references.ResolveAll([]models.ProductDescriptor{
		{Kind: models.KindTea, ID: models.StringID("a")},
		{Kind: "", ID: models.StringID("b")},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReferenceKind)

	refs, err := references.ResolveAll(nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
