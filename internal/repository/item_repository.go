package repository

import (
	"errors"
	"time"

	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/prometheus"

	"gorm.io/gorm"
)

// ItemRepository stores and retrieves listings. Every read path excludes
// soft-deleted listings unless includeInactive is set for an explicit
// administrative audit.
type ItemRepository interface {
	Create(item *model.Item) error
	GetByID(id uint, includeInactive bool) (*model.Item, error)
	GetWithOwner(id uint) (*model.ItemWithOwner, error)
	List(filter ItemFilter, page Pagination) ([]model.Item, int64, error)
	ListWithOwners(filter ItemFilter, page Pagination) ([]model.ItemWithOwner, int64, error)
	Update(item *model.Item) error
	UpdateStatus(id uint, status, rejectionReason string) error
	SoftDelete(id uint) error
	CountByStatus() (map[string]int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository returns a gorm-backed ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(item).Error
}

func (r *itemRepository) GetByID(id uint, includeInactive bool) (*model.Item, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.Where("id = ?", id)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var item model.Item
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetWithOwner(id uint) (*model.ItemWithOwner, error) {
	item, err := r.GetByID(id, false)
	if err != nil {
		return nil, err
	}

	owners, err := r.loadOwners([]model.Item{*item})
	if err != nil {
		return nil, err
	}
	return &model.ItemWithOwner{Item: *item, Owner: owners[item.UserID]}, nil
}

func (r *itemRepository) List(filter ItemFilter, page Pagination) ([]model.Item, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	page = page.Normalize()
	query := r.applyFilter(filter)

	// Total count is computed independently of the page window
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Item
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) ListWithOwners(filter ItemFilter, page Pagination) ([]model.ItemWithOwner, int64, error) {
	items, total, err := r.List(filter, page)
	if err != nil {
		return nil, 0, err
	}

	owners, err := r.loadOwners(items)
	if err != nil {
		return nil, 0, err
	}

	joined := make([]model.ItemWithOwner, 0, len(items))
	for _, item := range items {
		joined = append(joined, model.ItemWithOwner{Item: item, Owner: owners[item.UserID]})
	}
	return joined, total, nil
}

func (r *itemRepository) Update(item *model.Item) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return r.db.Save(item).Error
}

// UpdateStatus performs a single conditional write scoped to active
// listings. Concurrent moderation decisions are last-write-wins.
func (r *itemRepository) UpdateStatus(id uint, status, rejectionReason string) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := r.db.Model(&model.Item{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *itemRepository) SoftDelete(id uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := r.db.Model(&model.Item{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *itemRepository) CountByStatus() (map[string]int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&model.Item{}).
		Select("status, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *itemRepository) applyFilter(filter ItemFilter) *gorm.DB {
	query := r.db.Model(&model.Item{}).Where("is_active = ?", true)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return query
}

// loadOwners fetches the password-stripped owner projection for a batch of
// items in one query.
func (r *itemRepository) loadOwners(items []model.Item) (map[uint]model.PublicUser, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		if !seen[item.UserID] {
			seen[item.UserID] = true
			ids = append(ids, item.UserID)
		}
	}
	if len(ids) == 0 {
		return map[uint]model.PublicUser{}, nil
	}

	var owners []model.PublicUser
	err := r.db.Model(&model.User{}).
		Select("id, name, email").
		Where("id IN ?", ids).
		Scan(&owners).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.PublicUser, len(owners))
	for _, owner := range owners {
		byID[owner.ID] = owner
	}
	return byID, nil
}
