package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "shopkart/internal/errors"
	"shopkart/internal/model"
	"shopkart/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Image       string          `json:"image" validate:"required,image_url"`
	Category    model.Category  `json:"category" validate:"required,oneof=electronics clothing books home sports toys beauty automotive"`
	Brand       string          `json:"brand" validate:"omitempty,max=50"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateProductRequest carries a partial product update.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Image       *string          `json:"image" validate:"omitempty,image_url"`
	Category    *model.Category  `json:"category" validate:"omitempty,oneof=electronics clothing books home sports toys beauty automotive"`
	Brand       *string          `json:"brand" validate:"omitempty,max=50"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
}

// RateProductRequest carries a single rating submission.
type RateProductRequest struct {
	Rating float64 `json:"rating" validate:"required,gt=0,lte=5"`
}

// productID treats malformed identifiers as not-found, never as a crash.
func productID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewNotFoundError("product not found")
	}
	return id, nil
}

// List godoc
// @Summary List all products, newest first
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create a product (admin)
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update a product (admin)
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product (admin)
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "product deleted successfully",
	})
}

// Rate godoc
// @Summary Submit a rating for a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body RateProductRequest true "Rating value"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/rating [patch]
func (h *ProductHandler) Rate(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req RateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Rate(c.Request().Context(), id, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ByCategory godoc
// @Summary List active products of one category, newest first
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} model.Product
// @Router /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	category := model.Category(c.Param("category"))
	products, err := h.productService.ByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search godoc
// @Summary Search products by name, description or category
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	products, err := h.productService.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
