package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogUser is the part of a user account the fulfillment core reads.
type CatalogUser struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
	Role  string
}

// CatalogRepository reads the catalog and account data owned by other services.
type CatalogRepository interface {
	// GetUser returns a live user account, or errs.ObjectNotFoundError.
	GetUser(ctx context.Context, id kernel.UUID) (CatalogUser, error)

	// VariantPrices returns the current unit price of each requested product variant.
	// Unknown variants are absent from the result.
	VariantPrices(ctx context.Context, variantIDs []kernel.UUID) (map[kernel.UUID]kernel.Money, error)
}
