package services

import (
	"context"

	"teahouse/internal/models"
	"teahouse/internal/validation"
)

// OfferService handles business logic related to offers. applicableTo is
// composed into references before every write.
type OfferService struct {
	col      *collection[models.Offer]
	composer *ReferenceComposer
}

// NewOfferService creates a new OfferService.
func NewOfferService(d Deps, composer *ReferenceComposer) *OfferService {
	return &OfferService{
		col:      newCollection[models.Offer](d, models.CollectionOffers, "offer", "offer"),
		composer: composer,
	}
}

func (s *OfferService) GetAll(ctx context.Context) ([]models.Offer, error) {
	return s.col.list(ctx)
}

func (s *OfferService) GetByID(ctx context.Context, id string) (models.Offer, error) {
	return s.col.get(ctx, id)
}

// SearchByTitle returns the offers whose title contains term.
func (s *OfferService) SearchByTitle(ctx context.Context, term string) ([]models.Offer, error) {
	return s.col.search(ctx, "title", term)
}

// Create validates the offer, composes its references and stores it.
func (s *OfferService) Create(ctx context.Context, in models.OfferInput) (models.Offer, error) {
	if err := validation.ValidateOffer(in).Err(); err != nil {
		return models.Offer{}, err
	}
	fields, err := s.fields(ctx, in)
	if err != nil {
		return models.Offer{}, err
	}
	return s.col.create(ctx, fields)
}

// Update applies a partial update, recomposing applicableTo when supplied.
func (s *OfferService) Update(ctx context.Context, id string, in models.OfferInput) (models.Offer, error) {
	if err := validation.ValidateOfferUpdate(in).Err(); err != nil {
		return models.Offer{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.Offer{}, err
	}
	fields, err := s.fields(ctx, in)
	if err != nil {
		return models.Offer{}, err
	}
	return s.col.update(ctx, doc.Key, fields)
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *OfferService) fields(ctx context.Context, in models.OfferInput) (map[string]interface{}, error) {
	fields, err := fieldsOf(in)
	if err != nil {
		return nil, err
	}
	if in.ApplicableTo == nil {
		return fields, nil
	}
	refs, err := s.composer.ComposeOffer(ctx, *in.ApplicableTo)
	if err != nil {
		return nil, err
	}
	if fields["applicableTo"], err = fieldValue(refs); err != nil {
		return nil, err
	}
	return fields, nil
}
