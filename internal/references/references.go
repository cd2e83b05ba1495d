// Package references turns product descriptors into stored references.
package references

import (
	"fmt"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
)

// collections is the only place product kinds are mapped to collections.
var collections = map[models.ProductKind]string{
	models.KindTea:   models.CollectionTeaProducts,
	models.KindCraft: models.CollectionCraftProducts,
}

// CollectionFor returns the collection holding products of kind.
func CollectionFor(kind models.ProductKind) (string, bool) {
	c, ok := collections[kind]
	return c, ok
}

// Resolve maps a descriptor to a reference. Unknown kinds fail with
// apperrors.ErrInvalidReferenceKind.
func Resolve(desc models.ProductDescriptor) (models.Reference, error) {
	collection, ok := CollectionFor(desc.Kind)
	if !ok {
		return models.Reference{}, apperrors.ErrInvalidReferenceKind.WithDetails(
			fmt.Sprintf("product type %q is not one of: tea, craft", desc.Kind))
	}
	return models.Reference{Collection: collection, ID: desc.ID, Kind: desc.Kind}, nil
}

// ResolveAll resolves every descriptor, failing on the first invalid one.
func ResolveAll(descs []models.ProductDescriptor) ([]models.Reference, error) {
	refs := make([]models.Reference, 0, len(descs))
	for _, d := range descs {
		ref, err := Resolve(d)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
