// Package handler translates HTTP requests into calls against the guard,
// repositories and order engine, and shapes results and errors into JSON.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
)

// respondError maps an application error to its HTTP shape. Only the stable
// kind and message go out; internal causes are logged here and nowhere else.
func respondError(c echo.Context, err error) error {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindInternal || appErr.Kind == apperr.KindUpstreamFailure {
		logger.FromContext(c).Error("Request failed",
			zap.String("kind", string(appErr.Kind)),
			zap.Error(appErr))
	}
	return c.JSON(apperr.HTTPStatus(appErr), echo.Map{"error": appErr.Message})
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.InvalidInput("invalid " + name)
	}
	return uint(id), nil
}

// parsePage reads skip/limit query parameters and applies the configured
// bounds.
func parsePage(c echo.Context, cfg config.PaginationConfig) repository.Page {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.NormalizePage(cfg, skip, limit)
}
