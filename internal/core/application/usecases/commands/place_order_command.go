package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is one requested variant. The price is resolved from the catalog.
type PlaceOrderItem struct {
	VariantID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand places a new order for the calling customer.
//
// Example:
//
//	addr, _ := order.NewAddress("Asha", "+911234567890", "12 MG Road", "", "Pune", "MH", "411001")
//	cmd, err := NewPlaceOrderCommand(principal, kernel.NewUUID(), addr, []PlaceOrderItem{{VariantID: v, Quantity: 2}})
type PlaceOrderCommand struct {
	principal identity.Principal
	orderID   kernel.UUID
	address   order.Address
	items     []PlaceOrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the order id, the address and every item.
func NewPlaceOrderCommand(
	principal identity.Principal,
	orderID kernel.UUID,
	address order.Address,
	items []PlaceOrderItem,
) (PlaceOrderCommand, error) {
	errList := []error{orderID.Validate(), address.Validate()}
	if len(items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	for _, item := range items {
		errList = append(errList, item.VariantID.Validate())
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		principal: principal,
		orderID:   orderID,
		address:   address,
		items:     append([]PlaceOrderItem(nil), items...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Principal() identity.Principal { return c.principal }
func (c PlaceOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c PlaceOrderCommand) Address() order.Address        { return c.address }

// Items returns a copy of the requested items.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return append([]PlaceOrderItem(nil), c.items...)
}
