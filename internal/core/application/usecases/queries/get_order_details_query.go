package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// UnknownSeller is shown when the seller of the first line item cannot be resolved.
const UnknownSeller = "Unknown"

// GetOrderDetailsQuery fetches everything the admin order screen shows for one order.
type GetOrderDetailsQuery struct {
	principal identity.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(principal identity.Principal, orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) Principal() identity.Principal { return q.principal }
func (q GetOrderDetailsQuery) OrderID() kernel.UUID          { return q.orderID }

// PartySummary is a customer or driver as shown next to the order.
type PartySummary struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}

// OrderLineDetails is one line item with its catalog context.
type OrderLineDetails struct {
	ID          kernel.UUID
	VariantID   kernel.UUID
	ProductName string
	VariantName string
	SKU         string
	Quantity    int
	UnitPrice   kernel.Money
	LineTotal   kernel.Money
	// Image is the first entry of the product's image list, nil when the list is
	// empty or not valid JSON.
	Image *string
}

// AddressDetails is the delivery address snapshot.
type AddressDetails struct {
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

// GetOrderDetailsResponse is the full admin view of one order.
type GetOrderDetailsResponse struct {
	ID            kernel.UUID
	Number        string
	Status        order.Status
	PaymentStatus order.PaymentStatus
	SellerName    string
	Customer      PartySummary
	Driver        *PartySummary
	Address       AddressDetails
	Items         []OrderLineDetails
	Subtotal      kernel.Money
	DeliveryFee   kernel.Money
	Taxes         kernel.Money
	Total         kernel.Money
	Notes         string
	// CancellationReason mirrors Notes when the order is CANCELLED and is empty otherwise.
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeliveredAt        *time.Time
}
