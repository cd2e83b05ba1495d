package services

import (
	"context"

	"teahouse/internal/models"
	"teahouse/internal/validation"
)

// ReservationService handles business logic related to reservations.
//
// Writes run as validate, compose, persist. Nothing is written until the first
// two steps succeed, but lookup-then-update is not transactional: a concurrent
// delete between the steps surfaces as not found.
type ReservationService struct {
	col      *collection[models.Reservation]
	composer *ReferenceComposer
}

// NewReservationService creates a new ReservationService.
func NewReservationService(d Deps, composer *ReferenceComposer) *ReservationService {
	return &ReservationService{
		col:      newCollection[models.Reservation](d, models.CollectionReservations, "reservation", "reservation"),
		composer: composer,
	}
}

// GetAll retrieves all reservations.
func (s *ReservationService) GetAll(ctx context.Context) ([]models.Reservation, error) {
	return s.col.list(ctx)
}

// GetByID retrieves a reservation by storage key or logical id.
func (s *ReservationService) GetByID(ctx context.Context, id string) (models.Reservation, error) {
	return s.col.get(ctx, id)
}

// SearchByEmail returns the reservations whose contact email contains term.
func (s *ReservationService) SearchByEmail(ctx context.Context, term string) ([]models.Reservation, error) {
	return s.col.search(ctx, "contactEmail", term)
}

// Create creates a new reservation.
func (s *ReservationService) Create(ctx context.Context, in models.ReservationInput) (models.Reservation, error) {
	if err := validation.ValidateReservation(in).Err(); err != nil {
		return models.Reservation{}, err
	}
	fields, err := s.fields(ctx, in)
	if err != nil {
		return models.Reservation{}, err
	}
	return s.col.create(ctx, fields)
}

// Update applies a partial update. Any state in the allowed set is accepted;
// transitions are not enforced.
func (s *ReservationService) Update(ctx context.Context, id string, in models.ReservationInput) (models.Reservation, error) {
	if err := validation.ValidateReservationUpdate(in).Err(); err != nil {
		return models.Reservation{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}
	fields, err := s.fields(ctx, in)
	if err != nil {
		return models.Reservation{}, err
	}
	return s.col.update(ctx, doc.Key, fields)
}

// Delete removes a reservation.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *ReservationService) fields(ctx context.Context, in models.ReservationInput) (map[string]interface{}, error) {
	fields, err := fieldsOf(in)
	if err != nil {
		return nil, err
	}
	if in.Products == nil {
		return fields, nil
	}
	items, err := s.composer.ComposeReservation(ctx, *in.Products)
	if err != nil {
		return nil, err
	}
	if fields["products"], err = fieldValue(items); err != nil {
		return nil, err
	}
	return fields, nil
}
