package handler

import (
	"net/http"
	"strconv"

	"rewear-service/internal/apperr"
	"rewear-service/internal/service"
	"rewear-service/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler carries the application services for the HTTP boundary
type Handler struct {
	Services *service.Service
}

// NewHandler returns a Handler wired to the given services
func NewHandler(services *service.Service) *Handler {
	return &Handler{Services: services}
}

// RequestValidator adapts validator/v10 to echo's Validator interface
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a ready RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate validates a bound request payload
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.Validationf("%v", err)
	}
	return nil
}

// respondError maps the error taxonomy to stable, non-leaking HTTP
// responses. Internal detail goes to the operator log only.
func respondError(c echo.Context, err error) error {
	switch {
	case apperr.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case apperr.IsUnauthenticated(err):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case apperr.IsForbidden(err):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case apperr.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case apperr.IsConflict(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		logger.FromContext(c).Error("Request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validationf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
