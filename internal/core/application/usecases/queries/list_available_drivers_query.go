package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListAvailableDriversQueryIsNotConstructed = errors.New(
	"ListAvailableDriversQuery must be created via NewListAvailableDriversQuery constructor",
)

// ListAvailableDriversQuery lists the drivers an admin can hand an order to right now.
type ListAvailableDriversQuery struct {
	principal identity.Principal

	guard guard.ConstructorGuard
}

func NewListAvailableDriversQuery(principal identity.Principal) ListAvailableDriversQuery {
	return ListAvailableDriversQuery{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}
}

func (q ListAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDriversQueryIsNotConstructed)
}

func (q ListAvailableDriversQuery) Principal() identity.Principal { return q.principal }

// AvailableDriver is one ranked candidate.
type AvailableDriver struct {
	ID               kernel.UUID
	Name             string
	Phone            string
	Role             driver.Role
	ActiveOrderCount int
}
