package order

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Address is the delivery address snapshot copied onto an order at placement.
// It is a value object; the order never changes it afterwards.
type Address struct {
	recipient  string
	phone      string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
}

// NewAddress validates the mandatory parts of a delivery address.
func NewAddress(recipient, phone, line1, line2, city, state, postalCode string) (Address, error) {
	a := Address{
		recipient:  strings.TrimSpace(recipient),
		phone:      strings.TrimSpace(phone),
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Validate checks that the address can be delivered to.
func (a Address) Validate() error {
	var errList []error
	if a.recipient == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address recipient"))
	}
	if a.line1 == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address line1"))
	}
	if a.city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address city"))
	}
	if a.postalCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address postal code"))
	}
	return errors.Join(errList...)
}

func (a Address) Recipient() string  { return a.recipient }
func (a Address) Phone() string      { return a.phone }
func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
