package service

import (
	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/internal/moderation"
	"rewear-service/internal/repository"
	"rewear-service/pkg/jwtutil"
	"rewear-service/pkg/logger"
	"rewear-service/prometheus"

	"go.uber.org/zap"
)

// CreateItemInput is the listing creation payload. Status and active flags
// are deliberately absent: they are forced server-side.
type CreateItemInput struct {
	Title         string   `json:"title" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"required,min=10,max=1000"`
	Category      string   `json:"category" validate:"required"`
	Condition     string   `json:"condition" validate:"required"`
	Size          string   `json:"size" validate:"required"`
	Brand         string   `json:"brand"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gt=0"`
	SellingPrice  float64  `json:"selling_price" validate:"required,gt=0"`
	Images        []string `json:"images" validate:"required,min=1,max=5"`
	Tags          []string `json:"tags"`
}

// UpdateItemInput is a partial listing edit; nil fields are left unchanged
type UpdateItemInput struct {
	Title         *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description   *string  `json:"description" validate:"omitempty,min=10,max=1000"`
	Category      *string  `json:"category"`
	Condition     *string  `json:"condition"`
	Size          *string  `json:"size"`
	Brand         *string  `json:"brand"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gt=0"`
	SellingPrice  *float64 `json:"selling_price" validate:"omitempty,gt=0"`
	Images        []string `json:"images" validate:"omitempty,min=1,max=5"`
	Tags          []string `json:"tags"`
}

// ItemService owns the listing lifecycle: creation, edits, soft deletion
// and the moderation transitions.
type ItemService struct {
	items repository.ItemRepository
}

// NewItemService returns an ItemService backed by the item repository
func NewItemService(items repository.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

// Create inserts a new listing owned by the caller. Status is forced to
// pending and the listing is active regardless of anything in the payload.
func (s *ItemService) Create(claims *jwtutil.SessionClaims, input CreateItemInput) (*model.Item, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if err := validateItemFields(input.Category, input.Condition, input.Images, input.SellingPrice); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Description == "" || input.Size == "" {
		return nil, apperr.Validationf("title, description and size are required")
	}

	item := &model.Item{
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Condition:     input.Condition,
		Size:          input.Size,
		Brand:         input.Brand,
		OriginalPrice: input.OriginalPrice,
		SellingPrice:  input.SellingPrice,
		Images:        input.Images,
		Tags:          input.Tags,
		UserID:        claims.UserID,
		Status:        model.StatusPending,
		IsActive:      true,
	}

	if err := s.items.Create(item); err != nil {
		return nil, err
	}

	prometheus.ItemsCreatedCounter.Inc()
	logger.GetLogger().Info("Item created",
		zap.Uint("item_id", item.ID),
		zap.Uint("owner_id", claims.UserID),
		zap.String("title", item.Title))
	return item, nil
}

// Get returns a single active listing joined with its owner
func (s *ItemService) Get(id uint) (*model.ItemWithOwner, error) {
	return s.items.GetWithOwner(id)
}

// Update applies a partial edit. Only the owner or an admin may edit; a
// non-admin edit sends the listing back to pending review and clears any
// stored rejection reason, whatever fields were touched.
func (s *ItemService) Update(id uint, claims *jwtutil.SessionClaims, input UpdateItemInput) (*model.Item, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}

	item, err := s.items.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if item.UserID != claims.UserID && claims.Role != model.RoleAdmin {
		return nil, apperr.ErrForbidden
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Condition != nil {
		item.Condition = *input.Condition
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.OriginalPrice != nil {
		item.OriginalPrice = input.OriginalPrice
	}
	if input.SellingPrice != nil {
		item.SellingPrice = *input.SellingPrice
	}
	if input.Images != nil {
		item.Images = input.Images
	}
	if input.Tags != nil {
		item.Tags = input.Tags
	}

	// The merged record must still satisfy the listing constraints
	if err := validateItemFields(item.Category, item.Condition, item.Images, item.SellingPrice); err != nil {
		return nil, err
	}

	status, resetReason := moderation.ReviseDecision(claims.Role, item.Status)
	item.Status = status
	if resetReason {
		item.RejectionReason = ""
	}

	if err := s.items.Update(item); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Item updated",
		zap.Uint("item_id", item.ID),
		zap.Uint("editor_id", claims.UserID),
		zap.String("status", item.Status))
	return item, nil
}

// Delete soft-deletes a listing. Only the owner or an admin may delete; the
// record is never physically removed. Deleting an already-deleted listing
// reports not found.
func (s *ItemService) Delete(id uint, claims *jwtutil.SessionClaims) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}

	item, err := s.items.GetByID(id, false)
	if err != nil {
		return err
	}
	if item.UserID != claims.UserID && claims.Role != model.RoleAdmin {
		return apperr.ErrForbidden
	}

	if err := s.items.SoftDelete(id); err != nil {
		return err
	}

	prometheus.ItemsDeletedCounter.Inc()
	logger.GetLogger().Info("Item soft-deleted",
		zap.Uint("item_id", id),
		zap.Uint("actor_id", claims.UserID))
	return nil
}

// Approve transitions a listing to approved. Admin only; clears any stored
// rejection reason and refreshes the timestamp even when already approved.
func (s *ItemService) Approve(id uint, claims *jwtutil.SessionClaims) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}

	item, err := s.items.GetByID(id, false)
	if err != nil {
		return err
	}

	outcome, err := moderation.Approve(claims.Role, item.Status)
	if err != nil {
		s.auditModeration(claims, id, "approve", "denied")
		return err
	}

	if err := s.items.UpdateStatus(id, outcome.Status, outcome.RejectionReason); err != nil {
		return err
	}

	prometheus.RecordModerationDecision("approved")
	s.auditModeration(claims, id, "approve", "approved")
	return nil
}

// Reject transitions a listing to rejected with the given reason. Admin
// only; an empty reason is recorded as the fixed default.
func (s *ItemService) Reject(id uint, claims *jwtutil.SessionClaims, reason string) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}

	item, err := s.items.GetByID(id, false)
	if err != nil {
		return err
	}

	outcome, err := moderation.Reject(claims.Role, item.Status, reason)
	if err != nil {
		s.auditModeration(claims, id, "reject", "denied")
		return err
	}

	if err := s.items.UpdateStatus(id, outcome.Status, outcome.RejectionReason); err != nil {
		return err
	}

	prometheus.RecordModerationDecision("rejected")
	s.auditModeration(claims, id, "reject", "rejected")
	return nil
}

// auditModeration records who attempted which transition and the outcome
func (s *ItemService) auditModeration(claims *jwtutil.SessionClaims, itemID uint, action, outcome string) {
	logger.GetLogger().Info("Moderation action",
		zap.Uint("actor_id", claims.UserID),
		zap.String("actor_email", claims.Email),
		zap.String("actor_role", claims.Role),
		zap.Uint("item_id", itemID),
		zap.String("action", action),
		zap.String("outcome", outcome))
}

// validateItemFields enforces the listing data constraints shared by create
// and update.
func validateItemFields(category, condition string, images []string, sellingPrice float64) error {
	if !model.ValidCategory(category) {
		return apperr.Validationf("unknown category %q", category)
	}
	if !model.ValidCondition(condition) {
		return apperr.Validationf("unknown condition %q", condition)
	}
	if len(images) < model.MinImages || len(images) > model.MaxImages {
		return apperr.Validationf("images count must be between %d and %d", model.MinImages, model.MaxImages)
	}
	if sellingPrice <= 0 {
		return apperr.Validationf("selling price must be positive")
	}
	return nil
}
