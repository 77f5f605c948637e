package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is one position of an order. The line total is always computed from
// quantity and unit price.
type LineItem struct {
	id        kernel.UUID
	variantID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewLineItem validates a line item.
func NewLineItem(id, variantID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	var qtyErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(id.Validate(), variantID.Validate(), qtyErr, unitPrice.Validate()); err != nil {
		return LineItem{}, err
	}
	return LineItem{id: id, variantID: variantID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (li LineItem) ID() kernel.UUID        { return li.id }
func (li LineItem) VariantID() kernel.UUID { return li.variantID }
func (li LineItem) Quantity() int          { return li.quantity }
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// LineTotal returns quantity × unit price.
func (li LineItem) LineTotal() kernel.Money {
	return li.unitPrice.Times(li.quantity)
}
