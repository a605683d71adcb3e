package model

import (
	"time"
)

// WishlistEntry marks an item as saved by a user. A user may save a given
// item at most once.
type WishlistEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_item;not null"`
	ItemID    uint      `json:"item_id" gorm:"uniqueIndex:idx_wishlist_user_item;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItem is a wishlist entry joined with the saved item and its owner
type WishlistItem struct {
	EntryID uint          `json:"entry_id"`
	AddedAt time.Time     `json:"added_at"`
	Item    ItemWithOwner `json:"item"`
}
