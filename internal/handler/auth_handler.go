package handler

import (
	"net/http"
	"strconv"

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
	"github.com/MarcsonSantos/lu-estilo/prometheus"
)

// AuthHandler serves registration, login, token refresh and user lookups.
type AuthHandler struct {
	users      *repository.UserRepository
	hasher     *security.PasswordHasher
	tokens     *security.TokenManager
	pagination config.PaginationConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager, pagination config.PaginationConfig) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens, pagination: pagination}
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user from email, cpf and password.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if req.Email == "" || req.CPF == "" || req.Password == "" {
		return respondError(c, apperr.InvalidInput("email, cpf and password are required"))
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
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		return respondError(c, err)
	}

	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	// Missing user and wrong password produce the same response.
	user, err := h.users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return respondError(c, apperr.Unauthenticated("invalid credentials"))
	}
	if !h.hasher.Verify(req.Password, user.HashedPassword) {
		log.Warn("Login with wrong password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return respondError(c, apperr.Unauthenticated("invalid credentials"))
	}
	if !user.IsActive {
		log.Warn("Login for deactivated user", zap.Uint("user_id", user.ID))
		prometheus.RecordAuthError("user_inactive")
		return respondError(c, apperr.Unauthenticated("invalid credentials"))
	}

	tokens, err := h.issueTokens(user.Email)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, tokens)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	claims, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		log.Warn("Refresh with invalid token", zap.Error(err))
		prometheus.RecordAuthError("invalid_refresh_token")
		return respondError(c, apperr.Unauthenticated("invalid or expired token"))
	}

	// The subject must still resolve to an active user.
	user, err := h.users.FindByEmail(c.Request().Context(), claims.Subject)
	if err != nil || !user.IsActive {
		log.Warn("Refresh for unresolvable subject", zap.String("subject", claims.Subject))
		prometheus.RecordAuthError("user_not_found")
		return respondError(c, apperr.Unauthenticated("invalid or expired token"))
	}

	tokens, err := h.issueTokens(user.Email)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}

	log.Info("Token refreshed", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, tokens)
}

// ListUsers returns all users. Admin only.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionListUsers, 0); err != nil {
		return respondError(c, err)
	}

	users, err := h.users.List(c.Request().Context(), parsePage(c, h.pagination))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser looks up a user by id, email or cpf. Admin only; exactly one of
// the three query parameters must be supplied.
func (h *AuthHandler) GetUser(c echo.Context) error {
	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionReadUser, 0); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	var (
		user *model.User
		err  error
	)
	switch {
	case c.QueryParam("id") != "":
		id, parseErr := strconv.ParseUint(c.QueryParam("id"), 10, 32)
		if parseErr != nil {
			return respondError(c, apperr.InvalidInput("invalid id"))
		}
		user, err = h.users.FindByID(ctx, uint(id))
	case c.QueryParam("email") != "":
		user, err = h.users.FindByEmail(ctx, c.QueryParam("email"))
	case c.QueryParam("cpf") != "":
		user, err = h.users.FindByCPF(ctx, c.QueryParam("cpf"))
	default:
		return respondError(c, apperr.InvalidInput("supply id, email or cpf"))
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueTokens(email string) (*TokenResponse, error) {
	access, err := h.tokens.GenerateAccessToken(email)
	if err != nil {
		return nil, err
	}
	refresh, err := h.tokens.GenerateRefreshToken(email)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(h.tokens.AccessTokenTTL().Seconds()),
	}, nil
}
