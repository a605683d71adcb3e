package handler

import (
	"net/http"

	"rewear-service/internal/middleware"
	"rewear-service/internal/service"
	"rewear-service/pkg/logger"
	"rewear-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Register handles user registration
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		prometheus.RecordAuthError("invalid_registration")
		return respondError(c, err)
	}

	user, token, err := h.Services.Auth.Register(req)
	if err != nil {
		log.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("registration_failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles credential verification and token issuance
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		prometheus.RecordAuthError("invalid_login")
		return respondError(c, err)
	}

	user, token, err := h.Services.Auth.Login(req)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		// Same message for unknown user and wrong password
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated caller's identity
func (h *Handler) Me(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	user, err := h.Services.Auth.CurrentUser(claims)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateMe applies a partial profile edit to the caller's identity
func (h *Handler) UpdateMe(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	var req service.ProfileInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Services.Auth.UpdateProfile(claims, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword rotates the caller's password
func (h *Handler) ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	var req service.ChangePasswordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := h.Services.Auth.ChangePassword(claims, req); err != nil {
		prometheus.RecordAuthError("password_change_failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
