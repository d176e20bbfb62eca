package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/authz"
	"github.com/MarcsonSantos/lu-estilo/internal/middleware"
	"github.com/MarcsonSantos/lu-estilo/internal/order"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
	"github.com/MarcsonSantos/lu-estilo/prometheus"
)

// OrderHandler serves order placement and CRUD.
type OrderHandler struct {
	engine     *order.Engine
	orders     *repository.OrderRepository
	pagination config.PaginationConfig
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(engine *order.Engine, orders *repository.OrderRepository, pagination config.PaginationConfig) *OrderHandler {
	return &OrderHandler{engine: engine, orders: orders, pagination: pagination}
}

// CreateOrderRequest is the payload for order placement.
type CreateOrderRequest struct {
	Items []order.Line `json:"items"`
}

// UpdateOrderRequest updates an order's status.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// Create places a new order for the caller's client.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	if err := authz.Authorize(user, authz.ActionCreateOrder, 0); err != nil {
		prometheus.RecordOrderFailure("forbidden")
		return respondError(c, err)
	}
	clientID, _ := authz.ClientID(user)

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		prometheus.RecordOrderFailure("invalid_request")
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	placed, err := h.engine.PlaceOrder(c.Request().Context(), clientID, req.Items)
	if err != nil {
		prometheus.RecordOrderFailure(string(apperr.From(err).Kind))
		return respondError(c, err)
	}

	prometheus.OrdersPlacedCounter.Inc()
	prometheus.OrderItemsPlacedTotal.Add(float64(len(placed.Items)))
	log.Info("Order placed",
		zap.Uint("order_id", placed.ID),
		zap.Uint("client_id", clientID),
		zap.Int("items", len(placed.Items)))
	return c.JSON(http.StatusCreated, placed)
}

// List returns orders: all of them for admins, the caller's own otherwise.
func (h *OrderHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, apperr.Unauthenticated("authentication required"))
	}
	page := parsePage(c, h.pagination)
	ctx := c.Request().Context()

	if user.IsAdmin {
		orders, err := h.orders.List(ctx, page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	}

	clientID, linked := authz.ClientID(user)
	if !linked {
		return respondError(c, apperr.Forbidden("access denied: no client record linked to this user"))
	}
	orders, err := h.orders.ListByClient(ctx, clientID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order. Admin or the owning client.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	found, err := h.orders.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionReadOrder, found.ClientID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, found)
}

// Update changes an order's status. Admin or the owning client. Items are
// immutable after commit; status is the only mutable field.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	found, err := h.orders.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionUpdateOrder, found.ClientID); err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if req.Status == "" {
		return respondError(c, apperr.InvalidInput("status is required"))
	}

	updated, err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Order updated",
		zap.Uint("order_id", id),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an order and its items. Admin or the owning client.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	found, err := h.orders.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionDeleteOrder, found.ClientID); err != nil {
		return respondError(c, err)
	}

	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Order deleted", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted successfully"})
}
