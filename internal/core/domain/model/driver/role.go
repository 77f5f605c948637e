package driver

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the fulfillment role of a driver profile.
type Role string

const (
	RoleDeliveryDriver Role = "DELIVERY_DRIVER"
	RolePickupHelper   Role = "PICKUP_HELPER"
)

// Roles lists the roles that may carry orders.
func Roles() []Role {
	return []Role{RoleDeliveryDriver, RolePickupHelper}
}

// ParseRole accepts a role label in any casing.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if r.IsEligible() {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a fulfillment role", string(r)))
}

// IsEligible reports whether r is one of the roles allowed to carry orders.
func (r Role) IsEligible() bool {
	return r == RoleDeliveryDriver || r == RolePickupHelper
}

func (r Role) String() string {
	return string(r)
}

// VerificationStatus is owned by the onboarding workflow. The fulfillment core treats
// it as an opaque label; only Verified carries meaning here.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// NewVerificationStatus normalises the casing of a verification label.
func NewVerificationStatus(s string) (VerificationStatus, error) {
	v := VerificationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if v == "" {
		return "", errs.NewValueIsRequiredError("verification status")
	}
	return v, nil
}

// IsVerified reports whether the driver passed onboarding.
func (v VerificationStatus) IsVerified() bool {
	return v == VerificationVerified
}

func (v VerificationStatus) String() string {
	return string(v)
}
