package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/authz"
	"github.com/MarcsonSantos/lu-estilo/internal/middleware"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
)

// ProductHandler serves the product catalog. Reads are open to any
// authenticated user; writes are admin only.
type ProductHandler struct {
	products   *repository.ProductRepository
	pagination config.PaginationConfig
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products *repository.ProductRepository, pagination config.PaginationConfig) *ProductHandler {
	return &ProductHandler{products: products, pagination: pagination}
}

// CreateProductRequest is the payload for product creation.
type CreateProductRequest struct {
	Description    string     `json:"description"`
	SalePrice      float64    `json:"sale_price"`
	Barcode        string     `json:"barcode"`
	Section        string     `json:"section"`
	Stock          int        `json:"stock"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Image          *string    `json:"image,omitempty"`
	IsAvailable    *bool      `json:"is_available,omitempty"`
}

// List returns products matching the optional category, price and
// availability filters.
func (h *ProductHandler) List(c echo.Context) error {
	filter := repository.ProductFilter{
		Section: c.QueryParam("category"),
	}
	if raw := c.QueryParam("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(c, apperr.InvalidInput("invalid price"))
		}
		filter.MaxPrice = &price
	}
	if raw := c.QueryParam("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, apperr.InvalidInput("invalid available"))
		}
		filter.Available = &available
	}

	products, err := h.products.List(c.Request().Context(), filter, parsePage(c, h.pagination))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product by id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.products.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog. Admin only.
func (h *ProductHandler) Create(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionCreateProduct, 0); err != nil {
		return respondError(c, err)
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if req.Description == "" || req.Barcode == "" || req.Section == "" {
		return respondError(c, apperr.InvalidInput("description, barcode and section are required"))
	}
	if req.SalePrice < 0 {
		return respondError(c, apperr.InvalidInput("sale_price must not be negative"))
	}
	if req.Stock < 0 {
		return respondError(c, apperr.InvalidInput("stock must not be negative"))
	}

	product := &model.Product{
		Description:    req.Description,
		SalePrice:      req.SalePrice,
		Barcode:        req.Barcode,
		Section:        req.Section,
		Stock:          req.Stock,
		ExpirationDate: req.ExpirationDate,
		Image:          req.Image,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := h.products.Create(c.Request().Context(), product); err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("barcode", product.Barcode))
	return c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to one product. Admin only.
func (h *ProductHandler) Update(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionUpdateProduct, 0); err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch repository.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if patch.SalePrice != nil && *patch.SalePrice < 0 {
		return respondError(c, apperr.InvalidInput("sale_price must not be negative"))
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return respondError(c, apperr.InvalidInput("stock must not be negative"))
	}

	product, err := h.products.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Product updated", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, product)
}

// Delete removes one product. Admin only.
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionDeleteProduct, 0); err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
