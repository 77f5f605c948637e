package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminPrincipal(t *testing.T) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(kernel.NewUUID(), identity.RoleAdmin)
	require.NoError(t, err)
	return p
}

func principalWithRole(t *testing.T, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	addr, err := order.NewAddress("Asha", "+911234567890", "12 MG Road", "", "Pune", "MH", "411001")
	require.NoError(t, err)
	return addr
}

// orderInStatus restores an order in the given status, as the store would return it.
func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 2, kernel.Money(4999))
	require.NoError(t, err)

	created := fixedNow.Add(-2 * time.Hour)
	snap := order.Snapshot{
		ID:            kernel.NewUUID(),
		CustomerID:    kernel.NewUUID(),
		Address:       testAddress(t),
		Items:         []order.LineItem{item},
		Status:        status,
		PaymentStatus: order.PaymentPending,
		DeliveryFee:   kernel.Money(4000),
		Taxes:         kernel.Money(900),
		CreatedAt:     created,
		UpdatedAt:     created,
		Version:       1,
	}
	snap.Number = order.NewOrderNumber(created, snap.ID)
	if status == order.Delivered {
		deliveredAt := created.Add(time.Hour)
		snap.DeliveredAt = &deliveredAt
	}

	o, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	return o
}

type driverOpts struct {
	role         driver.Role
	verification driver.VerificationStatus
	online       bool
	deleted      bool
}

func testDriver(t *testing.T, opts driverOpts) *driver.Driver {
	t.Helper()
	if opts.role == "" {
		opts.role = driver.RoleDeliveryDriver
	}
	if opts.verification == "" {
		opts.verification = driver.VerificationVerified
	}
	created := fixedNow.Add(-24 * time.Hour)
	snap := driver.Snapshot{
		ID:           kernel.NewUUID(),
		UserID:       kernel.NewUUID(),
		Name:         "Ravi",
		Phone:        "+919800000000",
		Role:         opts.role,
		Verification: opts.verification,
		IsOnline:     opts.online,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if opts.deleted {
		snap.DeletedAt = &created
	}
	d, err := driver.RestoreDriver(snap)
	require.NoError(t, err)
	return d
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) MarkOfflineSeenBefore(ctx context.Context, cutoff, now time.Time) (int64, error) {
	args := m.Called(ctx, cutoff, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetUser(ctx context.Context, id kernel.UUID) (ports.CatalogUser, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CatalogUser), args.Error(1)
}

func (m *MockCatalogRepository) VariantPrices(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[kernel.UUID]kernel.Money, error) {
	args := m.Called(ctx, variantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]kernel.Money), args.Error(1)
}

type MockSettingsProvider struct{ mock.Mock }

func (m *MockSettingsProvider) Current(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogOrderUoWFactory struct{ mock.Mock }

func (m *MockCatalogOrderUoWFactory) Create() commands.CatalogOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogOrderUoW)
}

type MockCatalogDriverUoWFactory struct{ mock.Mock }

func (m *MockCatalogDriverUoWFactory) Create() commands.CatalogDriverUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogDriverUoW)
}
