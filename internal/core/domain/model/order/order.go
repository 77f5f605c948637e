package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsDeleted is returned when mutating a soft-deleted order.
	ErrOrderIsDeleted = errors.New("order is deleted")
)

// Order is the aggregate root of the order store. It tracks one customer purchase
// through the fulfillment lifecycle.
//
// Order follows these invariants:
//   - Must have a valid id, order number, customer and delivery address
//   - Total is always subtotal + delivery fee + taxes and is never stored independently
//   - deliveredAt is set if and only if status is DELIVERED
//   - createdAt never changes; updatedAt moves on every mutation
//   - The delivery address snapshot is immutable once the order is placed
//
// Legality of status changes is decided by the lifecycle engine; the aggregate only
// applies an already decided FieldUpdates and re-checks the delivered invariant.
type Order struct {
	// id is the opaque identifier
	id kernel.UUID

	// number is the human readable order number, stable once assigned
	number string

	// customerID references the owning customer profile
	customerID kernel.UUID

	// address is the delivery address snapshot
	address Address

	// driverID is the assigned driver (nil if unassigned)
	driverID *kernel.UUID

	// items are the ordered line items
	items []LineItem

	status        Status
	paymentStatus PaymentStatus

	deliveryFee kernel.Money
	taxes       kernel.Money

	// notes is the only free-text channel; a cancellation reason overwrites it
	notes string

	createdAt   time.Time
	updatedAt   time.Time
	deliveredAt *time.Time
	deletedAt   *time.Time

	// version is the optimistic concurrency counter maintained by the order store
	version int64

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID            kernel.UUID
	Number        string
	CustomerID    kernel.UUID
	Address       Address
	DriverID      *kernel.UUID
	Items         []LineItem
	Status        Status
	PaymentStatus PaymentStatus
	DeliveryFee   kernel.Money
	Taxes         kernel.Money
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	DeletedAt     *time.Time
	Version       int64
}

// FieldUpdates is the outcome of a lifecycle decision: the new status plus every
// derived field that changes with it.
type FieldUpdates struct {
	Status Status

	// Notes replaces the order notes when non-nil.
	Notes *string

	// DeliveredAt is set on transitions into DELIVERED.
	DeliveredAt *time.Time

	// ClearDeliveredAt is set when a forced transition leaves DELIVERED.
	ClearDeliveredAt bool

	UpdatedAt time.Time
}

// NewOrder places a new order in PENDING status with PENDING payment.
//
// Parameters:
//   - id: Unique identifier for the order
//   - customerID: The customer placing the order
//   - address: Delivery address snapshot
//   - items: At least one line item
//   - deliveryFee, taxes: Non-negative amounts added to the subtotal
//   - now: Placement time, used for createdAt, updatedAt and the order number
//
// Returns:
//   - *Order: The placed order
//   - error: All validation failures joined together
//
// Example:
//
//	addr, _ := order.NewAddress("Asha", "+911234567890", "12 MG Road", "", "Pune", "MH", "411001")
//	item, _ := order.NewLineItem(kernel.NewUUID(), variantID, 2, kernel.Money(4999))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, addr, []order.LineItem{item}, 4000, 900, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	address Address,
	items []LineItem,
	deliveryFee kernel.Money,
	taxes kernel.Money,
	now time.Time,
) (*Order, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}

	now = now.UTC()
	o := &Order{
		id:            id,
		number:        NewOrderNumber(now, id),
		customerID:    customerID,
		address:       address,
		items:         append([]LineItem(nil), items...),
		status:        Pending,
		paymentStatus: PaymentPending,
		deliveryFee:   deliveryFee,
		taxes:         taxes,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(itemsErr, o.validateState()); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. The same invariants as
// NewOrder are enforced, so corrupt rows are rejected instead of loaded.
func RestoreOrder(s Snapshot) (*Order, error) {
	var driverID *kernel.UUID
	if s.DriverID != nil {
		id := *s.DriverID
		driverID = &id
	}

	o := &Order{
		id:            s.ID,
		number:        s.Number,
		customerID:    s.CustomerID,
		address:       s.Address,
		driverID:      driverID,
		items:         append([]LineItem(nil), s.Items...),
		status:        s.Status,
		paymentStatus: s.PaymentStatus,
		deliveryFee:   s.DeliveryFee,
		taxes:         s.Taxes,
		notes:         s.Notes,
		createdAt:     s.CreatedAt.UTC(),
		updatedAt:     s.UpdatedAt.UTC(),
		deliveredAt:   copyTime(s.DeliveredAt),
		deletedAt:     copyTime(s.DeletedAt),
		version:       s.Version,
		guard:         guard.NewConstructorGuard(),
	}

	if err := o.validateState(); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOrderNumber derives the human readable order number from the placement date
// and the order id, e.g. ORD-20261016-550E8400.
func NewOrderNumber(placedAt time.Time, id kernel.UUID) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", placedAt.UTC().Format("20060102"), short)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Address() Address { return o.address }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }
func (o *Order) Taxes() kernel.Money { return o.taxes }
func (o *Order) Notes() string { return o.notes }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) DeliveredAt() *time.Time { return copyTime(o.deliveredAt) }
func (o *Order) DeletedAt() *time.Time { return copyTime(o.deletedAt) }
func (o *Order) Version() int64 { return o.version }
func (o *Order) IsDeleted() bool { return o.deletedAt != nil }

// Driver returns the assigned driver id, or nil when unassigned.
func (o *Order) Driver() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// Items returns a copy of the line items in their original order.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal is the sum of all line totals.
func (o *Order) Subtotal() kernel.Money {
	subtotal := kernel.Zero
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Total is subtotal + delivery fee + taxes.
func (o *Order) Total() kernel.Money {
	return o.Subtotal().Add(o.deliveryFee).Add(o.taxes)
}

// ApplyTransition applies a lifecycle decision produced by the lifecycle engine.
//
// The aggregate does not check the transition table (force mode is a caller
// decision) but it refuses any update that would break the delivered invariant
// or touch a deleted order. On error the order is left unchanged.
func (o *Order) ApplyTransition(u FieldUpdates) error {
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	if err := u.Status.Validate(); err != nil {
		return err
	}

	deliveredAt := o.deliveredAt
	if u.DeliveredAt != nil {
		deliveredAt = copyTime(u.DeliveredAt)
	}
	if u.ClearDeliveredAt {
		deliveredAt = nil
	}
	if err := checkDelivered(u.Status, deliveredAt); err != nil {
		return err
	}

	o.status = u.Status
	o.deliveredAt = deliveredAt
	if u.Notes != nil {
		o.notes = *u.Notes
	}
	o.touch(u.UpdatedAt)
	return nil
}

// AssignDriver binds the order to a driver, replacing any previous binding.
//
// Returns:
//   - true when the driver reference changed
//   - false when the same driver was already assigned (nothing is modified)
//   - error when the id is invalid or the order is deleted
func (o *Order) AssignDriver(driverID kernel.UUID, now time.Time) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}
	if o.IsDeleted() {
		return false, ErrOrderIsDeleted
	}
	if o.driverID != nil && o.driverID.IsEqual(driverID) {
		return false, nil
	}

	o.driverID = &driverID
	o.touch(now)
	return true, nil
}

// MarkDeleted soft deletes the order. Deleting twice is a no-op.
func (o *Order) MarkDeleted(now time.Time) {
	if o.IsDeleted() {
		return
	}
	deletedAt := now.UTC()
	o.deletedAt = &deletedAt
	o.touch(now)
}

// touch moves updatedAt forward. It never goes backwards, so clock skew between
// app servers cannot make a later write look older.
func (o *Order) touch(now time.Time) {
	now = now.UTC()
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) validateState() error {
	var errList []error
	errList = append(errList, o.id.Validate(), o.customerID.Validate(), o.address.Validate())
	if o.number == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order number"))
	}
	if o.driverID != nil {
		errList = append(errList, o.driverID.Validate())
	}
	errList = append(errList,
		o.status.Validate(),
		o.paymentStatus.Validate(),
		o.deliveryFee.Validate(),
		o.taxes.Validate(),
		checkDelivered(o.status, o.deliveredAt),
	)
	if o.createdAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdAt"))
	}
	return errors.Join(errList...)
}

func checkDelivered(status Status, deliveredAt *time.Time) error {
	if status == Delivered && deliveredAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt", errors.New("must be set when status is DELIVERED"))
	}
	if status != Delivered && deliveredAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt", fmt.Errorf("must be empty when status is %s", status))
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
