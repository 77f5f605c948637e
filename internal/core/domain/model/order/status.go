package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the operational state of an order. Exactly one value is active at a time.
//
// Transition table (strict policy):
//
//	PENDING ──> CONFIRMED ──> PICKING ──> PICKED ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │            │            │          │               │
//	   └────────────┴────────────┴──────────┴───────────────┴──────────> CANCELLED
//
// DELIVERED and CANCELLED are terminal. There are no self loops and no back edges.
// The string value is what gets persisted and what the admin facade sorts on.
type Status string

const (
	Pending        Status = "PENDING"
	Confirmed      Status = "CONFIRMED"
	Picking        Status = "PICKING"
	Picked         Status = "PICKED"
	OutForDelivery Status = "OUT_FOR_DELIVERY"
	Delivered      Status = "DELIVERED"
	Cancelled      Status = "CANCELLED"
)

// transitions is the strict lifecycle table. A status missing from the map has
// no outgoing edges.
var transitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled},
	Confirmed:      {Picking, Cancelled},
	Picking:        {Picked, Cancelled},
	Picked:         {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered, Cancelled},
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Picking, Picked, OutForDelivery, Delivered, Cancelled}
}

// ActiveStatuses are the statuses that count towards a driver's load.
func ActiveStatuses() []Status {
	return []Status{Picking, Picked, OutForDelivery}
}

// ParseStatus accepts a status label in any casing.
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError if the label is not a known status
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of the seven lifecycle statuses.
func (s Status) Validate() error {
	for _, known := range Statuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no strict transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether an order in s is being worked on by its driver.
func (s Status) IsActive() bool {
	for _, active := range ActiveStatuses() {
		if s == active {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the strict table allows s -> next.
// Self transitions are never allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
