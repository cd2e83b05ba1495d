package services

import (
	"context"

	"teahouse/internal/models"
	"teahouse/internal/validation"
)

// TeaProductService handles business logic related to tea products.
type TeaProductService struct {
	col *collection[models.TeaProduct]
}

// NewTeaProductService creates a new TeaProductService.
func NewTeaProductService(d Deps) *TeaProductService {
	return &TeaProductService{col: newCollection[models.TeaProduct](d, models.CollectionTeaProducts, "teaProduct", "tea product")}
}

// GetAll retrieves all tea products.
func (s *TeaProductService) GetAll(ctx context.Context) ([]models.TeaProduct, error) {
	return s.col.list(ctx)
}

// GetByID retrieves a tea product by storage key or logical id.
func (s *TeaProductService) GetByID(ctx context.Context, id string) (models.TeaProduct, error) {
	return s.col.get(ctx, id)
}

// SearchByName returns the tea products whose name contains term.
func (s *TeaProductService) SearchByName(ctx context.Context, term string) ([]models.TeaProduct, error) {
	return s.col.search(ctx, "name", term)
}

// Create validates and stores a new tea product.
func (s *TeaProductService) Create(ctx context.Context, in models.TeaProductInput) (models.TeaProduct, error) {
	if err := validation.ValidateTeaProduct(in).Err(); err != nil {
		return models.TeaProduct{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.TeaProduct{}, err
	}
	return s.col.create(ctx, fields)
}

// Update applies a partial update.
func (s *TeaProductService) Update(ctx context.Context, id string, in models.TeaProductInput) (models.TeaProduct, error) {
	if err := validation.ValidateTeaProductUpdate(in).Err(); err != nil {
		return models.TeaProduct{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.TeaProduct{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.TeaProduct{}, err
	}
	return s.col.update(ctx, doc.Key, fields)
}

// Delete removes a tea product.
func (s *TeaProductService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

// CraftProductService handles business logic related to craft products.
type CraftProductService struct {
	col *collection[models.CraftProduct]
}

// NewCraftProductService creates a new CraftProductService.
func NewCraftProductService(d Deps) *CraftProductService {
	return &CraftProductService{col: newCollection[models.CraftProduct](d, models.CollectionCraftProducts, "craftProduct", "craft product")}
}

func (s *CraftProductService) GetAll(ctx context.Context) ([]models.CraftProduct, error) {
	return s.col.list(ctx)
}

func (s *CraftProductService) GetByID(ctx context.Context, id string) (models.CraftProduct, error) {
	return s.col.get(ctx, id)
}

func (s *CraftProductService) SearchByName(ctx context.Context, term string) ([]models.CraftProduct, error) {
	return s.col.search(ctx, "name", term)
}

func (s *CraftProductService) Create(ctx context.Context, in models.CraftProductInput) (models.CraftProduct, error) {
	if err := validation.ValidateCraftProduct(in).Err(); err != nil {
		return models.CraftProduct{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.CraftProduct{}, err
	}
	return s.col.create(ctx, fields)
}

// Update applies a partial update. Craft stock is capped on update.
func (s *CraftProductService) Update(ctx context.Context, id string, in models.CraftProductInput) (models.CraftProduct, error) {
	if err := validation.ValidateCraftProductUpdate(in).Err(); err != nil {
		return models.CraftProduct{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.CraftProduct{}, err
	}
	fields, err := fieldsOf(in)
	if err != nil {
		return models.CraftProduct{}, err
	}
	return s.col.update(ctx, doc.Key, fields)
}

func (s *CraftProductService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}
