package service

import (
	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/internal/repository"
	"rewear-service/pkg/jwtutil"
)

// CatalogPage is a page of listings joined with their owners
type CatalogPage struct {
	Items []model.ItemWithOwner `json:"items"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Total int64                 `json:"total"`
	Pages int64                 `json:"pages"`
}

// ModerationQueue is the admin dashboard view: a filtered page plus
// per-status counts across all active listings.
type ModerationQueue struct {
	CatalogPage
	Counts map[string]int64 `json:"counts"`
}

// CatalogService builds the read views over listings. All views sort by
// creation time descending and embed the password-stripped owner.
type CatalogService struct {
	items repository.ItemRepository
}

// NewCatalogService returns a CatalogService backed by the item repository
func NewCatalogService(items repository.ItemRepository) *CatalogService {
	return &CatalogService{items: items}
}

// PublicCatalog returns approved, active listings for anonymous and
// authenticated browsing, optionally restricted to one category.
func (s *CatalogService) PublicCatalog(category string, page repository.Pagination) (*CatalogPage, error) {
	if category != "" && !model.ValidCategory(category) {
		return nil, apperr.Validationf("unknown category %q", category)
	}

	filter := repository.ItemFilter{
		Status:   model.StatusApproved,
		Category: category,
	}
	return s.page(filter, page)
}

// OwnerListings returns all of one owner's active listings regardless of
// moderation state, for profile views.
func (s *CatalogService) OwnerListings(ownerID uint, page repository.Pagination) (*CatalogPage, error) {
	if ownerID == 0 {
		return nil, apperr.Validationf("owner id is required")
	}
	return s.page(repository.ItemFilter{UserID: ownerID}, page)
}

// Queue returns the moderation queue for admins: optionally filtered by one
// exact status, with per-status counts for the dashboard summary.
func (s *CatalogService) Queue(claims *jwtutil.SessionClaims, status string, page repository.Pagination) (*ModerationQueue, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if claims.Role != model.RoleAdmin {
		return nil, apperr.ErrForbidden
	}
	if status != "" && !model.ValidStatus(status) {
		return nil, apperr.Validationf("unknown status %q", status)
	}

	catalogPage, err := s.page(repository.ItemFilter{Status: status}, page)
	if err != nil {
		return nil, err
	}

	counts, err := s.items.CountByStatus()
	if err != nil {
		return nil, err
	}

	return &ModerationQueue{CatalogPage: *catalogPage, Counts: counts}, nil
}

func (s *CatalogService) page(filter repository.ItemFilter, page repository.Pagination) (*CatalogPage, error) {
	page = page.Normalize()

	items, total, err := s.items.ListWithOwners(filter, page)
	if err != nil {
		return nil, err
	}

	pages := total / int64(page.Limit)
	if total%int64(page.Limit) != 0 {
		pages++
	}

	return &CatalogPage{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: pages,
	}, nil
}
