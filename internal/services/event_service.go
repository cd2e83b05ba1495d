package services

import (
	"context"

	"teahouse/internal/models"
	"teahouse/internal/validation"
)

// EventService handles business logic related to events.
type EventService struct {
	col *collection[models.Event]
}

// NewEventService creates a new EventService.
func NewEventService(d Deps) *EventService {
	return &EventService{col: newCollection[models.Event](d, models.CollectionEvents, "event", "event")}
}

func (s *EventService) GetAll(ctx context.Context) ([]models.Event, error) {
	return s.col.list(ctx)
}

func (s *EventService) GetByID(ctx context.Context, id string) (models.Event, error) {
	return s.col.get(ctx, id)
}

// SearchByTitle returns the events whose title contains term.
func (s *EventService) SearchByTitle(ctx context.Context, term string) ([]models.Event, error) {
	return s.col.search(ctx, "title", term)
}

func (s *EventService) Create(ctx context.Context, in models.EventInput) (models.Event, error) {
	if err := validation.ValidateEvent(in).Err(); err != nil {
		return models.Event{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.Event{}, err
	}
	return s.col.create(ctx, fields)
}

func (s *EventService) Update(ctx context.Context, id string, in models.EventInput) (models.Event, error) {
	if err := validation.ValidateEventUpdate(in).Err(); err != nil {
		return models.Event{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.Event{}, err
	}
	return s.col.update(ctx, doc.Key, fields)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}
