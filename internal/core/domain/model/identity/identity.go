// Package identity models the authenticated caller. The identity collaborator
// verifies credentials; the core only receives the resulting Principal and must
// be handed it explicitly on every call.
package identity

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role is the account role asserted by the identity collaborator.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleCustomer       Role = "CUSTOMER"
	RoleSeller         Role = "SELLER"
	RoleDeliveryDriver Role = "DELIVERY_DRIVER"
	RolePickupHelper   Role = "PICKUP_HELPER"
)

// ParseRole normalises the casing of a role claim. Unknown roles are kept as-is;
// they simply never satisfy any of the Require helpers.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Principal is a verified caller.
type Principal struct {
	UserID kernel.UUID
	Role   Role
}

// NewPrincipal validates a principal coming from the identity collaborator.
func NewPrincipal(userID kernel.UUID, role Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}
	if role == "" {
		return Principal{}, errs.NewValueIsRequiredError("role")
	}
	return Principal{UserID: userID, Role: role}, nil
}

// IsAuthenticated reports whether the principal carries a verified user id.
func (p Principal) IsAuthenticated() bool {
	return p.UserID.Validate() == nil
}

// RequireAdmin is the authorization guard placed in front of every
// administrative operation.
func RequireAdmin(p Principal, action string) error {
	return RequireRole(p, action, RoleAdmin)
}

// RequireAuthenticated accepts any verified principal.
func RequireAuthenticated(p Principal, action string) error {
	if !p.IsAuthenticated() {
		return errs.NewForbiddenError(action, string(p.Role))
	}
	return nil
}

// RequireRole accepts a verified principal holding one of roles.
func RequireRole(p Principal, action string, roles ...Role) error {
	if err := RequireAuthenticated(p, action); err != nil {
		return err
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return errs.NewForbiddenError(action, string(p.Role))
}
