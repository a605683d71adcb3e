package handler

import (
	"net/http"

	"rewear-service/internal/middleware"
	"rewear-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetWishlist returns the caller's saved items
func (h *Handler) GetWishlist(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	items, err := h.Services.Wishlist.List(claims)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddToWishlist saves an item to the caller's wishlist
func (h *Handler) AddToWishlist(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	var req struct {
		ItemID uint `json:"item_id"`
	}
	if err := c.Bind(&req); err != nil || req.ItemID == 0 {
		log.Warn("Invalid wishlist payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}

	if err := h.Services.Wishlist.Add(claims, req.ItemID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item added to wishlist"})
}

// RemoveFromWishlist drops an item from the caller's wishlist
func (h *Handler) RemoveFromWishlist(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Services.Wishlist.Remove(claims, itemID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from wishlist"})
}
