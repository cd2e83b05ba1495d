package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/references"
	"teahouse/internal/repositories"
)

// ReferenceComposer turns client descriptors into stored references for offers
// and reservations. Composition is all-or-nothing and happens before any write.
// With verify set, every referenced product must exist and reservation items
// must not exceed the product's stock.
type ReferenceComposer struct {
	finder repositories.Finder
	verify bool
	log    *slog.Logger
}

// NewReferenceComposer creates a ReferenceComposer. finder is only used when
// verify is true.
func NewReferenceComposer(finder repositories.Finder, verify bool, log *slog.Logger) *ReferenceComposer {
	if log == nil {
		log = slog.Default()
	}
	return &ReferenceComposer{finder: finder, verify: verify, log: log}
}

// ComposeOffer resolves an offer's applicableTo list.
func (c *ReferenceComposer) ComposeOffer(ctx context.Context, items []models.ProductDescriptorInput) ([]models.Reference, error) {
	descs := make([]models.ProductDescriptor, 0, len(items))
	for _, item := range items {
		descs = append(descs, item.Descriptor())
	}
	refs, err := references.ResolveAll(descs)
	if err != nil {
		return nil, err
	}
	if !c.verify {
		return refs, nil
	}
	for _, ref := range refs {
		if _, err := c.lookup(ctx, ref); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// ComposeReservation resolves each item's product and carries quantity and
// unit price through unchanged.
func (c *ReferenceComposer) ComposeReservation(ctx context.Context, items []models.ReservationItemInput) ([]models.ReservationItem, error) {
	out := make([]models.ReservationItem, 0, len(items))
	for _, item := range items {
		ref, err := references.Resolve(item.Descriptor())
		if err != nil {
			return nil, err
		}
		out = append(out, models.ReservationItem{
			ProductRef: ref,
			Quantity:   derefFloat(item.Quantity),
			UnitPrice:  derefFloat(item.UnitPrice),
		})
	}
	if !c.verify {
		return out, nil
	}
	for _, item := range out {
		doc, err := c.lookup(ctx, item.ProductRef)
		if err != nil {
			return nil, err
		}
		if stock, ok := numeric(doc.Fields["stock"]); ok && item.Quantity > stock {
			return nil, apperrors.ErrValidation.WithDetails(fmt.Sprintf(
				"insufficient stock for %s/%s (requested: %g, available: %g)",
				item.ProductRef.Collection, item.ProductRef.ID, item.Quantity, stock))
		}
	}
	return out, nil
}

func (c *ReferenceComposer) lookup(ctx context.Context, ref models.Reference) (*models.Document, error) {
	doc, err := c.finder.Find(ctx, ref.Collection, ref.ID.String())
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage(
				fmt.Sprintf("referenced product %s/%s not found", ref.Collection, ref.ID))
		}
		c.log.ErrorContext(ctx, "reference lookup failed", "collection", ref.Collection, "id", ref.ID.String(), "error", err)
		return nil, apperrors.ErrStore.Wrap(err)
	}
	return doc, nil
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// numeric reads a stored number whatever its decoded Go type.
func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
