package driver

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	// ErrDriverIsDeleted is returned when mutating a soft-deleted driver profile.
	ErrDriverIsDeleted = errors.New("driver is deleted")
)

// Driver is the fulfillment profile of a delivery driver or pickup helper.
// It is an aggregate root of the driver directory.
//
// Key responsibilities:
//   - Holding the fulfillment role and the opaque verification label
//   - Tracking presence (isOnline, lastSeenAt) as reported by the presence heartbeat
//   - Exposing the owning user's name and phone, which are read-only here
//
// Business rules:
//   - Driver must have a valid id, a valid owning user id and a fulfillment role
//   - Verification status is never empty
//   - A soft-deleted driver cannot change
//
// The active-order count is deliberately not part of the aggregate: it is derived
// from the order store at read time.
type Driver struct {
	// id uniquely identifies the driver profile
	id kernel.UUID
	// userID references the owning user account
	userID kernel.UUID
	// name and phone are copied from the user account
	name  string
	phone string

	role         Role
	verification VerificationStatus

	// isOnline is maintained by the presence collaborator
	isOnline bool
	// lastSeenAt is the time of the last heartbeat (nil if never seen)
	lastSeenAt *time.Time

	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of a driver for RestoreDriver.
type Snapshot struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	Name         string
	Phone        string
	Role         Role
	Verification VerificationStatus
	IsOnline     bool
	LastSeenAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewDriver registers a fulfillment profile for an existing user. New profiles start
// offline with PENDING verification.
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), userID, "Ravi", "+919800000000", driver.RoleDeliveryDriver, time.Now())
//	if err != nil {
//	    return err
//	}
func NewDriver(id, userID kernel.UUID, name, phone string, role Role, now time.Time) (*Driver, error) {
	now = now.UTC()
	d := &Driver{
		name:         name,
		phone:        phone,
		verification: VerificationPending,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setRole(role),
	); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDriver reconstructs a Driver from persistent storage.
func RestoreDriver(s Snapshot) (*Driver, error) {
	d := &Driver{
		name:       s.Name,
		phone:      s.Phone,
		isOnline:   s.IsOnline,
		lastSeenAt: copyTime(s.LastSeenAt),
		createdAt:  s.CreatedAt.UTC(),
		updatedAt:  s.UpdatedAt.UTC(),
		deletedAt:  copyTime(s.DeletedAt),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setUserID(s.UserID),
		d.setRole(s.Role),
		d.setVerification(s.Verification),
	); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares drivers by id.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID                  { return d.id }
func (d *Driver) UserID() kernel.UUID              { return d.userID }
func (d *Driver) Name() string                     { return d.name }
func (d *Driver) Phone() string                    { return d.phone }
func (d *Driver) Role() Role                       { return d.role }
func (d *Driver) Verification() VerificationStatus { return d.verification }
func (d *Driver) IsOnline() bool                   { return d.isOnline }
func (d *Driver) CreatedAt() time.Time             { return d.createdAt }
func (d *Driver) UpdatedAt() time.Time             { return d.updatedAt }
func (d *Driver) LastSeenAt() *time.Time           { return copyTime(d.lastSeenAt) }
func (d *Driver) DeletedAt() *time.Time            { return copyTime(d.deletedAt) }
func (d *Driver) IsDeleted() bool                  { return d.deletedAt != nil }

// SetVerification replaces the verification label.
func (d *Driver) SetVerification(status VerificationStatus, now time.Time) error {
	if d.IsDeleted() {
		return ErrDriverIsDeleted
	}
	if err := d.setVerification(status); err != nil {
		return err
	}
	d.touch(now)
	return nil
}

// SetPresence records a presence report. Going online also records the heartbeat
// time; going offline keeps the last heartbeat so operators can see when the driver
// dropped off.
func (d *Driver) SetPresence(online bool, now time.Time) error {
	if d.IsDeleted() {
		return ErrDriverIsDeleted
	}
	now = now.UTC()
	d.isOnline = online
	if online {
		d.lastSeenAt = &now
	}
	d.touch(now)
	return nil
}

// IsStale reports whether an online driver has not sent a heartbeat since cutoff.
func (d *Driver) IsStale(cutoff time.Time) bool {
	if !d.isOnline {
		return false
	}
	return d.lastSeenAt == nil || d.lastSeenAt.Before(cutoff)
}

func (d *Driver) touch(now time.Time) {
	now = now.UTC()
	if now.After(d.updatedAt) {
		d.updatedAt = now
	}
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("user id")
	}
	d.userID = userID
	return nil
}

func (d *Driver) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	d.role = role
	return nil
}

func (d *Driver) setVerification(status VerificationStatus) error {
	if status == "" {
		return errs.NewValueIsRequiredError("verification status")
	}
	d.verification = status
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
