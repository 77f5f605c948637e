package postgres

import (
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"

	"gorm.io/gorm"
)

// Models lists every table the service maps, in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.UserDTO{},
		&catalogrepo.SellerDTO{},
		&catalogrepo.ProductDTO{},
		&catalogrepo.ProductVariantDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&settingsrepo.AdminSettingDTO{},
	}
}

// Migrate creates or updates the schema for all mapped tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
