package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates (the order store).
// Soft-deleted orders are invisible to every method.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditional on the
	// version the aggregate was loaded with; a stale writer gets errs.ConflictError and
	// an order that disappeared gets errs.ObjectNotFoundError.
	// Line items and the address snapshot are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a live order by id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding unit of work
	// finishes. On stores without row locks it behaves like Get and the version check
	// in Update is the only guard.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
