// Package service implements the core marketplace operations. Every
// operation takes the caller's resolved session claims as an explicit
// parameter (nil means anonymous); nothing in this package reads ambient
// request state.
package service

import (
	"rewear-service/internal/repository"
	"rewear-service/pkg/config"
)

// Service bundles the application services
type Service struct {
	Auth     *AuthService
	Item     *ItemService
	Catalog  *CatalogService
	Wishlist *WishlistService
}

// NewService wires the services on top of the repositories
func NewService(repo *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, cfg),
		Item:     NewItemService(repo.Item),
		Catalog:  NewCatalogService(repo.Item),
		Wishlist: NewWishlistService(repo.Wishlist, repo.Item),
	}
}
