package handler

import (
	"net/http"
	"strconv"

	"rewear-service/internal/middleware"
	"rewear-service/internal/repository"
	"rewear-service/internal/service"
	"rewear-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListItems serves the catalog read views. Without query parameters it is
// the public catalog of approved listings; user_id switches to the owner
// view used by profile pages.
func (h *Handler) ListItems(c echo.Context) error {
	page := paginationFromQuery(c)

	if rawOwner := c.QueryParam("user_id"); rawOwner != "" {
		ownerID, err := strconv.ParseUint(rawOwner, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}

		result, err := h.Services.Catalog.OwnerListings(uint(ownerID), page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, catalogResponse(result))
	}

	result, err := h.Services.Catalog.PublicCatalog(c.QueryParam("category"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, catalogResponse(result))
}

// GetItem returns a single active listing with its owner
func (h *Handler) GetItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	item, err := h.Services.Item.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// CreateItem creates a new listing owned by the caller
func (h *Handler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	var req service.CreateItemInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse item payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	item, err := h.Services.Item.Create(claims, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Item created",
		zap.Uint("item_id", item.ID),
		zap.String("title", item.Title))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Item created successfully",
		"item":    item,
	})
}

// UpdateItem applies a partial edit to a listing
func (h *Handler) UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)
	claims := middleware.ClaimsFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateItemInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse item payload", zap.Uint("item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	item, err := h.Services.Item.Update(id, claims, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item updated successfully",
		"item":    item,
	})
}

// DeleteItem soft-deletes a listing
func (h *Handler) DeleteItem(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Services.Item.Delete(id, claims); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item deleted successfully"})
}

// paginationFromQuery reads offset paging parameters; invalid values fall
// back to defaults.
func paginationFromQuery(c echo.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.Pagination{Page: page, Limit: limit}
}

// catalogResponse formats a catalog page the way the UI expects it
func catalogResponse(page *service.CatalogPage) echo.Map {
	return echo.Map{
		"items": page.Items,
		"pagination": echo.Map{
			"page":  page.Page,
			"limit": page.Limit,
			"total": page.Total,
			"pages": page.Pages,
		},
	}
}
