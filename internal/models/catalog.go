package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	Products  []Product `json:"products,omitempty"`
}

type Product struct {
	BaseModel
	Name          string         `gorm:"index" json:"name"`
	Description   string         `json:"description"`
	CoverImage    string         `json:"cover_image"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	CurrentPrice  float64        `json:"current_price"`
	OriginalPrice float64        `json:"original_price"`
	Unit          string         `json:"unit"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	IsNew         bool           `json:"is_new"`
	IsPopular     bool           `json:"is_popular"`
	IsActive      bool           `json:"is_active"`
}

type Bundle struct {
	BaseModel
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	CoverImage    string       `json:"cover_image"`
	CurrentPrice  float64      `json:"current_price"`
	OriginalPrice float64      `json:"original_price"`
	CategoryID    *uuid.UUID   `gorm:"type:uuid;index" json:"category_id"`
	IsPopular     bool         `json:"is_popular"`
	IsActive      bool         `json:"is_active"`
	Items         []BundleItem `json:"items,omitempty"`
}

// BundleItem ties a product into a bundle. ProductDetails is populated on
// read, never stored.
type BundleItem struct {
	BaseModel
	BundleID       uuid.UUID `gorm:"type:uuid;index" json:"bundle_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Quantity       int       `json:"quantity"`
	ProductDetails *Product  `gorm:"-" json:"product_details,omitempty"`
}
