package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/authz"
	"github.com/MarcsonSantos/lu-estilo/internal/middleware"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
	"github.com/MarcsonSantos/lu-estilo/pkg/security"
)

// ClientHandler serves client registration and CRUD.
type ClientHandler struct {
	clients    *repository.ClientRepository
	hasher     *security.PasswordHasher
	pagination config.PaginationConfig
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(clients *repository.ClientRepository, hasher *security.PasswordHasher, pagination config.PaginationConfig) *ClientHandler {
	return &ClientHandler{clients: clients, hasher: hasher, pagination: pagination}
}

// CreateClientRequest registers a client together with its backing user.
type CreateClientRequest struct {
	Email       string `json:"email"`
	CPF         string `json:"cpf"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Create registers a new client and its user in one operation.
func (h *ClientHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if req.Email == "" || req.CPF == "" || req.Password == "" ||
		req.Name == "" || req.Address == "" || req.PhoneNumber == "" {
		return respondError(c, apperr.InvalidInput("email, cpf, password, name, address and phone_number are required"))
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}

	user := &model.User{
		Email:          req.Email,
		CPF:            req.CPF,
		HashedPassword: digest,
		IsActive:       true,
	}
	client := &model.Client{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.clients.CreateWithUser(c.Request().Context(), user, client); err != nil {
		return respondError(c, err)
	}
	client.User = user

	log.Info("Client registered",
		zap.Uint("client_id", client.ID),
		zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, client)
}

// List returns all clients. Admin only.
func (h *ClientHandler) List(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionListClients, 0); err != nil {
		return respondError(c, err)
	}

	clients, err := h.clients.List(c.Request().Context(), parsePage(c, h.pagination))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get returns one client. Admin or the owning client.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	client, err := h.clients.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionReadClient, client.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, client)
}

// Update applies a partial update to one client. Admin or the owning client.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	client, err := h.clients.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionUpdateClient, client.ID); err != nil {
		return respondError(c, err)
	}

	var patch repository.ClientPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	updated, err := h.clients.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Client updated", zap.Uint("client_id", id))
	return c.JSON(http.StatusOK, updated)
}

// Delete removes one client. Admin only; the backing user survives.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionDeleteClient, id); err != nil {
		return respondError(c, err)
	}

	if err := h.clients.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Client deleted", zap.Uint("client_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "client deleted successfully"})
}
