// Package catalogrepo maps the catalog and account tables owned by other services.
// The fulfillment core only reads them.
package catalogrepo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserDTO is a user account.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string `gorm:"index"`
	Phone     string
	Role      string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserDTO) TableName() string {
	return "users"
}

// SellerDTO is a seller storefront.
type SellerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (SellerDTO) TableName() string {
	return "sellers"
}

// ProductDTO is a listed product. Images is a JSON array of URLs written by the
// catalog service; it is not guaranteed to be well formed.
type ProductDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID      `gorm:"type:uuid;index"`
	Name      string
	Images    datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ProductVariantDTO is a purchasable variant of a product. Price is in minor units.
type ProductVariantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	SKU       string `gorm:"column:sku"`
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProductVariantDTO) TableName() string {
	return "product_variants"
}
