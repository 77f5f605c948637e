package testutil

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder writes fixture rows straight through the persistence adapters.
type Seeder struct {
	t   *testing.T
	db  *gorm.DB
	Now time.Time
}

// NewSeeder creates a seeder; Now is the base time used for defaults.
func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	t.Helper()
	return &Seeder{t: t, db: db, Now: time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)}
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// User inserts a user account.
func (s *Seeder) User(name, email, phone, role string) kernel.UUID {
	s.t.Helper()
	id := kernel.NewUUID()
	require.NoError(s.t, s.db.Create(&catalogrepo.UserDTO{
		ID: id.Bytes(), Name: name, Email: email, Phone: phone, Role: role,
	}).Error)
	return id
}

// Product inserts a seller, a product with the given raw images JSON and one variant,
// and returns the variant id.
func (s *Seeder) Product(sellerName, productName, imagesJSON string, price int64) kernel.UUID {
	s.t.Helper()
	sellerUser := s.User(sellerName, "", "", "SELLER")
	sellerID, productID, variantID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	require.NoError(s.t, s.db.Create(&catalogrepo.SellerDTO{
		ID: sellerID.Bytes(), UserID: sellerUser.Bytes(), DisplayName: sellerName,
	}).Error)

	var images datatypes.JSON
	if imagesJSON != "" {
		images = datatypes.JSON(imagesJSON)
	}
	require.NoError(s.t, s.db.Create(&catalogrepo.ProductDTO{
		ID: productID.Bytes(), SellerID: sellerID.Bytes(), Name: productName, Images: images,
	}).Error)
	require.NoError(s.t, s.db.Create(&catalogrepo.ProductVariantDTO{
		ID: variantID.Bytes(), ProductID: productID.Bytes(), Name: "default", SKU: productName, Price: price,
	}).Error)
	return variantID
}

// DriverSpec describes a driver fixture.
type DriverSpec struct {
	Name         string
	Phone        string
	Role         driver.Role
	Verification driver.VerificationStatus
	Online       bool
	Deleted      bool
}

// Driver inserts a user and its driver profile.
func (s *Seeder) Driver(spec DriverSpec) *driver.Driver {
	s.t.Helper()
	if spec.Role == "" {
		spec.Role = driver.RoleDeliveryDriver
	}
	if spec.Verification == "" {
		spec.Verification = driver.VerificationVerified
	}

	userID := s.User(spec.Name, "", spec.Phone, spec.Role.String())
	var lastSeen, deletedAt *time.Time
	if spec.Online {
		lastSeen = &s.Now
	}
	if spec.Deleted {
		deletedAt = &s.Now
	}

	d, err := driver.RestoreDriver(driver.Snapshot{
		ID:           kernel.NewUUID(),
		UserID:       userID,
		Name:         spec.Name,
		Phone:        spec.Phone,
		Role:         spec.Role,
		Verification: spec.Verification,
		IsOnline:     spec.Online,
		LastSeenAt:   lastSeen,
		CreatedAt:    s.Now,
		UpdatedAt:    s.Now,
		DeletedAt:    deletedAt,
	})
	require.NoError(s.t, err)
	require.NoError(s.t, driverrepo.NewGormDriverRepository(s.db, noopTracker{}).Add(context.Background(), d))
	return d
}

// OrderSpec describes an order fixture. Zero values get sensible defaults.
type OrderSpec struct {
	CustomerID    kernel.UUID
	VariantID     kernel.UUID
	Quantity      int
	UnitPrice     kernel.Money
	DeliveryFee   kernel.Money
	Taxes         kernel.Money
	Status        order.Status
	PaymentStatus order.PaymentStatus
	DriverID      *kernel.UUID
	Notes         string
	CreatedAt     time.Time
	Deleted       bool
}

// Order inserts an order with one line item.
func (s *Seeder) Order(spec OrderSpec) *order.Order {
	s.t.Helper()
	if spec.CustomerID.Validate() != nil {
		spec.CustomerID = s.User("Customer", "customer@example.com", "", "CUSTOMER")
	}
	if spec.VariantID.Validate() != nil {
		spec.VariantID = s.Product("Acme Store", "Widget", `["https://cdn.example.com/w.png"]`, 1000)
	}
	if spec.Quantity == 0 {
		spec.Quantity = 1
	}
	if spec.UnitPrice == 0 {
		spec.UnitPrice = 1000
	}
	if spec.Status == "" {
		spec.Status = order.Pending
	}
	if spec.PaymentStatus == "" {
		spec.PaymentStatus = order.PaymentPending
	}
	if spec.CreatedAt.IsZero() {
		spec.CreatedAt = s.Now
	}

	addr, err := order.NewAddress("Asha", "+911234567890", "12 MG Road", "", "Pune", "MH", "411001")
	require.NoError(s.t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), spec.VariantID, spec.Quantity, spec.UnitPrice)
	require.NoError(s.t, err)

	var deliveredAt, deletedAt *time.Time
	if spec.Status == order.Delivered {
		at := spec.CreatedAt.Add(time.Hour)
		deliveredAt = &at
	}
	if spec.Deleted {
		deletedAt = &spec.CreatedAt
	}

	id := kernel.NewUUID()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            id,
		Number:        order.NewOrderNumber(spec.CreatedAt, id),
		CustomerID:    spec.CustomerID,
		Address:       addr,
		DriverID:      spec.DriverID,
		Items:         []order.LineItem{item},
		Status:        spec.Status,
		PaymentStatus: spec.PaymentStatus,
		DeliveryFee:   spec.DeliveryFee,
		Taxes:         spec.Taxes,
		Notes:         spec.Notes,
		CreatedAt:     spec.CreatedAt,
		UpdatedAt:     spec.CreatedAt,
		DeliveredAt:   deliveredAt,
		DeletedAt:     deletedAt,
	})
	require.NoError(s.t, err)
	require.NoError(s.t, orderrepo.NewGormOrderRepository(s.db, noopTracker{}).Add(context.Background(), o))
	return o
}

// Setting upserts one admin_settings row.
func (s *Seeder) Setting(key, value string) {
	s.t.Helper()
	require.NoError(s.t, s.db.Save(&settingsrepo.AdminSettingDTO{Key: key, Value: value, UpdatedAt: s.Now}).Error)
}
