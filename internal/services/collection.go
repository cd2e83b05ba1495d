package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/repositories"
)

// collection is the CRUD core shared by the entity services. T is the read model
// documents are decoded into.
type collection[T any] struct {
	name     string
	entity   string
	label    string
	notFound string

	store  repositories.DocumentStore
	finder repositories.Finder
	events *eventEmitter
	log    *slog.Logger
}

// Deps are the collaborators every entity service needs.
type Deps struct {
	Store     repositories.DocumentStore
	Finder    repositories.Finder
	Publisher EventPublisher
	Logger    *slog.Logger
}

// newCollection builds the core for one collection. entity names the record in
// routing keys and messages; label is its human-readable form.
func newCollection[T any](d Deps, name, entity, label string) *collection[T] {
	finder := d.Finder
	if finder == nil {
		finder = repositories.NewLenientFinder(d.Store)
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &collection[T]{
		name:     name,
		entity:   entity,
		label:    label,
		notFound: label + " not found",
		store:    d.Store,
		finder:   finder,
		events:   &eventEmitter{publisher: d.Publisher, log: log},
		log:      log.With("collection", name),
	}
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	docs, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, c.storeErr(ctx, "list", err)
	}
	return c.decodeAll(docs)
}

// locate resolves id (storage key or logical id) to the stored document.
func (c *collection[T]) locate(ctx context.Context, id string) (*models.Document, error) {
	doc, err := c.finder.Find(ctx, c.name, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage(c.notFound)
		}
		return nil, c.storeErr(ctx, "find", err)
	}
	return doc, nil
}

func (c *collection[T]) get(ctx context.Context, id string) (T, error) {
	doc, err := c.locate(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decode(*doc)
}

func (c *collection[T]) create(ctx context.Context, fields map[string]interface{}) (T, error) {
	var zero T
	key, err := c.store.Add(ctx, c.name, fields)
	if err != nil {
		return zero, c.storeErr(ctx, "add", err)
	}
	out, err := c.reload(ctx, key)
	if err != nil {
		return zero, err
	}
	c.events.emit(ctx, c.entity, ActionCreated, key)
	return out, nil
}

// update merges fields into the document stored under key. Callers locate the
// document first.
func (c *collection[T]) update(ctx context.Context, key string, fields map[string]interface{}) (T, error) {
	var zero T
	if err := c.store.Update(ctx, c.name, key, fields); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return zero, apperrors.ErrNotFound.WithMessage(c.notFound)
		}
		return zero, c.storeErr(ctx, "update", err)
	}
	out, err := c.reload(ctx, key)
	if err != nil {
		return zero, err
	}
	c.events.emit(ctx, c.entity, ActionUpdated, key)
	return out, nil
}

func (c *collection[T]) remove(ctx context.Context, id string) error {
	doc, err := c.locate(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.Delete(ctx, c.name, doc.Key); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrNotFound.WithMessage(c.notFound)
		}
		return c.storeErr(ctx, "delete", err)
	}
	c.events.emit(ctx, c.entity, ActionDeleted, doc.Key)
	return nil
}

// searchDocs returns the documents whose string field contains term, ignoring
// case. ErrNoMatch when nothing matches.
func (c *collection[T]) searchDocs(ctx context.Context, field, term string) ([]models.Document, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.ErrValidation.WithDetails("a non-empty search term is required")
	}
	docs, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, c.storeErr(ctx, "search", err)
	}
	needle := strings.ToLower(term)
	var matched []models.Document
	for _, doc := range docs {
		v, ok := doc.Fields[field].(string)
		if ok && strings.Contains(strings.ToLower(v), needle) {
			matched = append(matched, doc)
		}
	}
	if len(matched) == 0 {
		return nil, apperrors.ErrNoMatch.WithDetails("no " + c.label + " matched '" + term + "'")
	}
	return matched, nil
}

func (c *collection[T]) search(ctx context.Context, field, term string) ([]T, error) {
	docs, err := c.searchDocs(ctx, field, term)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(docs)
}

func (c *collection[T]) reload(ctx context.Context, key string) (T, error) {
	doc, err := c.store.Get(ctx, c.name, key)
	if err != nil {
		var zero T
		return zero, c.storeErr(ctx, "get", err)
	}
	return c.decode(*doc)
}

func (c *collection[T]) decode(doc models.Document) (T, error) {
	out, err := models.DecodeDocument[T](doc)
	if err != nil {
		c.log.Error("stored document does not match its model", "key", doc.Key, "error", err)
		return out, apperrors.ErrInternal.Wrap(err)
	}
	return out, nil
}

func (c *collection[T]) decodeAll(docs []models.Document) ([]T, error) {
	out, err := models.DecodeDocuments[T](docs)
	if err != nil {
		c.log.Error("stored document does not match its model", "error", err)
		return nil, apperrors.ErrInternal.Wrap(err)
	}
	return out, nil
}

// storeErr logs a store failure with context and hides it behind ErrStore.
func (c *collection[T]) storeErr(ctx context.Context, op string, err error) error {
	c.log.ErrorContext(ctx, "document store operation failed", "op", op, "error", err)
	return apperrors.ErrStore.Wrap(err)
}

// fieldsOf converts a validated input into store fields.
func fieldsOf(in interface{}) (map[string]interface{}, error) {
	fields, err := models.ToFields(in)
	if err != nil {
		return nil, apperrors.ErrInternal.Wrap(err)
	}
	return fields, nil
}

// fieldValue converts a composed value (references, items) into the plain
// maps and slices every store backend accepts.
func fieldValue(v interface{}) (interface{}, error) {
	fields, err := models.ToFields(struct {
		V interface{} `json:"v"`
	}{v})
	if err != nil {
		return nil, apperrors.ErrInternal.Wrap(err)
	}
	return fields["v"], nil
}
