package model

import (
	"time"
)

// Moderation statuses for a listing
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusSold     = "sold"
)

// Item categories
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryDresses     = "dresses"
	CategoryOuterwear   = "outerwear"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

// Item conditions
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Listing image bounds
const (
	MinImages = 1
	MaxImages = 5
)

// Item represents a clothing listing with moderation status and ownership
type Item struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title" gorm:"type:varchar(100);not null"`
	Description     string     `json:"description" gorm:"type:text;not null"`
	Category        string     `json:"category" gorm:"type:varchar(20);not null;index"`
	Condition       string     `json:"condition" gorm:"type:varchar(20);not null"`
	Size            string     `json:"size" gorm:"type:varchar(50);not null"`
	Brand           string     `json:"brand,omitempty" gorm:"type:varchar(100)"`
	OriginalPrice   *float64   `json:"original_price,omitempty"`
	SellingPrice    float64    `json:"selling_price" gorm:"not null"`
	Images          []string   `json:"images" gorm:"serializer:json;not null"`
	Tags            []string   `json:"tags,omitempty" gorm:"serializer:json"`
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	Status          string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	SoldAt          *time.Time `json:"sold_at,omitempty"`
	BuyerID         *uint      `json:"buyer_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ItemWithOwner is an item joined with the safe projection of its owner
type ItemWithOwner struct {
	Item
	Owner PublicUser `json:"user"`
}

// ValidStatus reports whether s is a known moderation status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSold:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known item category
func ValidCategory(c string) bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear,
		CategoryShoes, CategoryAccessories, CategoryOther:
		return true
	}
	return false
}

// ValidCondition reports whether c is a known item condition
func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}
