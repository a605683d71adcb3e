package handler

import (
	"net/http"

	"rewear-service/internal/middleware"
	"rewear-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ApproveItem approves a pending listing. The service enforces the admin
// role before any state is touched.
func (h *Handler) ApproveItem(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Services.Item.Approve(id, claims); err != nil {
		log.Warn("Approve failed", zap.Uint("item_id", id), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item approved successfully"})
}

// RejectItem rejects a listing with an optional reason
func (h *Handler) RejectItem(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// A missing or empty body means "no reason given"
	_ = c.Bind(&req)

	if err := h.Services.Item.Reject(id, claims, req.Reason); err != nil {
		log.Warn("Reject failed", zap.Uint("item_id", id), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item rejected successfully"})
}

// ModerationQueue serves the admin dashboard: a page of listings in any
// moderation state plus per-status counts.
func (h *Handler) ModerationQueue(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	queue, err := h.Services.Catalog.Queue(claims, c.QueryParam("status"), paginationFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":  queue.Items,
		"counts": queue.Counts,
		"pagination": echo.Map{
			"page":  queue.Page,
			"limit": queue.Limit,
			"total": queue.Total,
			"pages": queue.Pages,
		},
	})
}
