package repository

import (
	"gorm.io/gorm"
)

// ItemFilter is a conjunction of optional listing filters. Zero values mean
// "no restriction". Inactive listings are always excluded unless a method
// states otherwise.
type ItemFilter struct {
	Status   string
	Category string
	UserID   uint
}

// Pagination is offset-based paging input
type Pagination struct {
	Page  int
	Limit int
}

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// Normalize clamps paging input to sane bounds
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Repository bundles the data access layers behind their interfaces
type Repository struct {
	User     UserRepository
	Item     ItemRepository
	Wishlist WishlistRepository
}

// NewRepository wires the gorm-backed repositories
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Item:     NewItemRepository(db),
		Wishlist: NewWishlistRepository(db),
	}
}
