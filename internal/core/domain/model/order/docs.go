// Package order provides the Order aggregate of the order store together with its
// value objects.
//
// The package includes:
//   - Order: the aggregate root; identity, amounts, driver binding and lifecycle fields
//   - Status: the seven lifecycle states and the strict transition table
//   - PaymentStatus: tracked alongside Status but never changed by the fulfillment core
//   - Address, LineItem: immutable snapshots captured at placement
//
// Key business rules:
//   - Total is always subtotal + delivery fee + taxes
//   - deliveredAt is set if and only if the order is DELIVERED
//   - DELIVERED and CANCELLED are terminal under the strict table
//   - Soft-deleted orders reject every mutation
//
// Deciding whether a status change is legal (and applying its side effects) is the job
// of services.LifecycleEngine; Order.ApplyTransition only applies the decided result.
package order
