// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler follows the same shape: validate the command, check the caller's
// principal, open a unit of work, load, decide, persist, commit.
package commands

import (
	"context"
	"fulfillment/internal/core/ports"
	"time"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order store within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver directory within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// CatalogRepoFactory provides access to the catalog read model within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW manages transactions across both order and driver aggregates.
	// Used by the assignment path, which reads a driver and writes an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   d, err := uow.DriverRepository().Get(ctx, driverID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// CatalogOrderUoW combines the order store with catalog lookups for order placement.
	CatalogOrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// CatalogOrderUoWFactory creates new CatalogOrderUoW instances.
	CatalogOrderUoWFactory interface {
		Create() CatalogOrderUoW
	}

	// CatalogDriverUoW combines the driver directory with user lookups for driver registration.
	CatalogDriverUoW interface {
		TxManager
		DriverRepoFactory
		CatalogRepoFactory
	}

	// CatalogDriverUoWFactory creates new CatalogDriverUoW instances.
	CatalogDriverUoWFactory interface {
		Create() CatalogDriverUoW
	}
)

// Clock returns the current time. Handlers take one so tests can pin timestamps.
type Clock func() time.Time

func orSystemClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
