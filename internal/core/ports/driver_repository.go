// Package ports defines the contracts between the fulfillment core and its
// infrastructure: the order store, the driver directory, the catalog read model and
// the admin settings collaborator.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates (the driver
// directory). Name and phone are joined from the owning user and are never written.
type DriverRepository interface {
	// Add persists a new driver profile.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists verification and presence changes of an existing profile.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a live driver by id, or errs.ObjectNotFoundError. Soft-deleted
	// drivers are reported as not found.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByUserID retrieves the live driver profile owned by a user account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)

	// MarkOfflineSeenBefore flips online drivers whose last heartbeat is older than
	// cutoff (or missing) to offline, stamping updatedAt with now, and returns how
	// many were changed.
	MarkOfflineSeenBefore(ctx context.Context, cutoff, now time.Time) (int64, error)
}
