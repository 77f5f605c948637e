package services

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/order"
)

// TransitionDecision is the outcome of LifecycleEngine.Decide.
type TransitionDecision struct {
	// Allowed reports whether the status change may be applied.
	Allowed bool
	// Forced is set when the change was allowed only because force mode bypassed
	// the strict table. Callers must record it as an anomaly.
	Forced bool
}

// LifecycleEngine is a pure domain service that decides order status changes and
// driver eligibility. It performs no I/O and never fails for business reasons:
// every answer is a boolean or a decision value that callers turn into domain errors.
//
// Example usage:
//
//	engine := services.NewLifecycleEngine()
//	decision := engine.Decide(o.Status(), order.Picked, false)
//	if !decision.Allowed {
//	    return errs.NewIllegalTransitionError(o.Status(), order.Picked)
//	}
//	updates := engine.ApplySideEffects(o, order.Picked, "", "", time.Now())
//	err := o.ApplyTransition(updates)
type LifecycleEngine struct{}

// NewLifecycleEngine creates a new LifecycleEngine instance.
func NewLifecycleEngine() LifecycleEngine {
	return LifecycleEngine{}
}

// CanTransition reports whether the strict table allows current -> requested.
func (LifecycleEngine) CanTransition(current, requested order.Status) bool {
	return current.CanTransitionTo(requested)
}

// Decide applies the strict table, or bypasses it when force is set.
//
// Returns:
//   - {Allowed: true, Forced: false} when the table allows the move (force is irrelevant)
//   - {Allowed: true, Forced: true} when only force mode allows it
//   - {Allowed: false} otherwise
func (e LifecycleEngine) Decide(current, requested order.Status, force bool) TransitionDecision {
	if e.CanTransition(current, requested) {
		return TransitionDecision{Allowed: true}
	}
	if force {
		return TransitionDecision{Allowed: true, Forced: true}
	}
	return TransitionDecision{}
}

// ApplySideEffects computes the field updates that accompany a move to newStatus.
//
// Rules:
//   - entering DELIVERED sets deliveredAt to now; an already delivered order keeps it
//   - leaving DELIVERED (only possible in force mode) clears deliveredAt
//   - a non-empty notes value replaces the order notes
//   - CANCELLED with a non-empty cancellation reason writes the reason into notes,
//     overwriting whatever was there (including notes passed in the same call)
//   - every move sets updatedAt to now
func (LifecycleEngine) ApplySideEffects(
	o *order.Order,
	newStatus order.Status,
	notes string,
	cancellationReason string,
	now time.Time,
) order.FieldUpdates {
	now = now.UTC()
	updates := order.FieldUpdates{
		Status:    newStatus,
		UpdatedAt: now,
	}

	if newStatus == order.Delivered {
		// set once; a forced DELIVERED -> DELIVERED keeps the original time
		if o.DeliveredAt() == nil {
			updates.DeliveredAt = &now
		}
	} else if o.DeliveredAt() != nil {
		updates.ClearDeliveredAt = true
	}

	if n := strings.TrimSpace(notes); n != "" {
		updates.Notes = &n
	}
	if reason := strings.TrimSpace(cancellationReason); newStatus == order.Cancelled && reason != "" {
		updates.Notes = &reason
	}

	return updates
}

// IsAssignmentEligible is the hard predicate for binding a driver to an order:
// a fulfillment role, VERIFIED, and not deleted. Presence is a ranking signal and
// is deliberately not checked here.
func (e LifecycleEngine) IsAssignmentEligible(d *driver.Driver) bool {
	return e.ExplainIneligibility(d) == ""
}

// ExplainIneligibility returns a short human readable reason why d cannot be
// assigned, or an empty string when it can.
func (LifecycleEngine) ExplainIneligibility(d *driver.Driver) string {
	switch {
	case d == nil || d.Validate() != nil:
		return "driver is not constructed"
	case !d.Role().IsEligible():
		return "role " + d.Role().String() + " cannot carry orders"
	case !d.Verification().IsVerified():
		return "verification status is " + d.Verification().String()
	case d.IsDeleted():
		return "driver is deleted"
	default:
		return ""
	}
}
