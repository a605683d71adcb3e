package service

import (
	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/internal/repository"
	"rewear-service/pkg/jwtutil"
	"rewear-service/pkg/logger"
	"rewear-service/prometheus"

	"go.uber.org/zap"
)

// WishlistService manages per-user saved items
type WishlistService struct {
	wishlist repository.WishlistRepository
	items    repository.ItemRepository
}

// NewWishlistService returns a WishlistService backed by the repositories
func NewWishlistService(wishlist repository.WishlistRepository, items repository.ItemRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, items: items}
}

// Add saves an active item to the caller's wishlist. Saving the same item
// twice reports a conflict.
func (s *WishlistService) Add(claims *jwtutil.SessionClaims, itemID uint) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}

	// The item must still exist and be active
	if _, err := s.items.GetByID(itemID, false); err != nil {
		return err
	}

	if err := s.wishlist.Add(claims.UserID, itemID); err != nil {
		return err
	}

	prometheus.WishlistAddCounter.Inc()
	logger.GetLogger().Info("Wishlist item added",
		zap.Uint("user_id", claims.UserID),
		zap.Uint("item_id", itemID))
	return nil
}

// Remove drops an item from the caller's wishlist
func (s *WishlistService) Remove(claims *jwtutil.SessionClaims, itemID uint) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}
	return s.wishlist.Remove(claims.UserID, itemID)
}

// List returns the caller's saved items joined with item and owner details
func (s *WishlistService) List(claims *jwtutil.SessionClaims) ([]model.WishlistItem, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return s.wishlist.ListByUser(claims.UserID)
}
