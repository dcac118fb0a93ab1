package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "shopkart/internal/errors"
	"shopkart/internal/model"
	"shopkart/internal/repository"
)

// CreateProductInput carries the fields for a new product. Zero stock is a
// valid value; brand and isActive fall back to their defaults when absent.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    model.Category
	Brand       string
	Stock       int
	IsActive    *bool
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *model.Category
	Brand       *string
	Stock       *int
	IsActive    *bool
}

// ProductService handles catalog operations.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Rate(ctx context.Context, id uuid.UUID, value float64) (*model.Product, error)
	ByCategory(ctx context.Context, category model.Category) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// List returns every product, newest first, active or not.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ensureSlice(products), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Brand:       input.Brand,
		Stock:       input.Stock,
		IsActive:    true,
	}
	if product.Brand == "" {
		product.Brand = model.DefaultBrand
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if fieldErrs := product.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs.Messages()...)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update applies only the supplied fields, then re-runs full schema
// validation before saving.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if fieldErrs := product.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs.Messages()...)
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewNotFoundError("product not found")
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Rate folds one rating into the running mean. The accepted range is (0, 5];
// a literal 0 is rejected, matching the contract for absent values.
func (s *productService) Rate(ctx context.Context, id uuid.UUID, value float64) (*model.Product, error) {
	if value <= 0 || value > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	product, err := s.repo.ApplyRating(ctx, id, value)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("apply rating: %w", err)
	}
	return product, nil
}

// ByCategory returns only active products. Unknown categories simply match
// nothing.
func (s *productService) ByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	return ensureSlice(products), nil
}

// Search matches name, description and category case-insensitively.
func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return ensureSlice(products), nil
}

// ensureSlice keeps empty result sets rendering as [] instead of null.
func ensureSlice(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
