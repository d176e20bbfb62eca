package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/model"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
	"github.com/MarcsonSantos/lu-estilo/pkg/security"
	"github.com/MarcsonSantos/lu-estilo/prometheus"
)

const currentUserKey = "current_user"

// Guard resolves bearer tokens to user records for protected routes.
type Guard struct {
	tokens *security.TokenManager
	users  *repository.UserRepository
}

// NewGuard creates a Guard over the token manager and user repository.
func NewGuard(tokens *security.TokenManager, users *repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate validates the access token and loads the acting user into the
// request context. Every failure mode produces the same response: a bad
// token and an unknown subject must be indistinguishable to the caller. The
// actual cause is logged and counted internally.
func (g *Guard) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_header")
			return unauthenticated(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("bad_header_format")
			return unauthenticated(c)
		}

		claims, err := g.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return unauthenticated(c)
		}
		if claims.Subject == "" {
			log.Warn("Token is missing its subject claim")
			prometheus.RecordAuthError("missing_subject")
			return unauthenticated(c)
		}

		user, err := g.users.FindByEmail(c.Request().Context(), claims.Subject)
		if err != nil {
			log.Warn("Token subject does not resolve to a user",
				zap.String("subject", claims.Subject), zap.Error(err))
			prometheus.RecordAuthError("user_not_found")
			return unauthenticated(c)
		}
		if !user.IsActive {
			log.Warn("Authentication for deactivated user",
				zap.Uint("user_id", user.ID))
			prometheus.RecordAuthError("user_inactive")
			return unauthenticated(c)
		}

		c.Set(currentUserKey, user)
		return next(c)
	}
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
}

// CurrentUser returns the authenticated user stored by Authenticate.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}
