package repository

import (
	"errors"
	"time"

	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/prometheus"

	"gorm.io/gorm"
)

// WishlistRepository stores per-user saved items
type WishlistRepository interface {
	Add(userID, itemID uint) error
	Remove(userID, itemID uint) error
	ListByUser(userID uint) ([]model.WishlistItem, error)
}

type wishlistRepository struct {
	db    *gorm.DB
	items ItemRepository
}

// NewWishlistRepository returns a gorm-backed WishlistRepository
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db, items: NewItemRepository(db)}
}

func (r *wishlistRepository) Add(userID, itemID uint) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var count int64
	err := r.db.Model(&model.WishlistEntry{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.ErrConflict
	}

	entry := model.WishlistEntry{UserID: userID, ItemID: itemID}
	if err := r.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *wishlistRepository) Remove(userID, itemID uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.WishlistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *wishlistRepository) ListByUser(userID uint) ([]model.WishlistItem, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var entries []model.WishlistEntry
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	saved := make([]model.WishlistItem, 0, len(entries))
	for _, entry := range entries {
		item, err := r.items.GetWithOwner(entry.ItemID)
		if err != nil {
			// Skip entries whose item has been soft-deleted since
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		saved = append(saved, model.WishlistItem{
			EntryID: entry.ID,
			AddedAt: entry.CreatedAt,
			Item:    *item,
		})
	}
	return saved, nil
}
