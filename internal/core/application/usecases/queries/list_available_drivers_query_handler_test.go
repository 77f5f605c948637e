package queries_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/testutil"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ListAvailableDriversSuite struct {
	suite.Suite
	db   *gorm.DB
	seed *testutil.Seeder
}

func TestListAvailableDriversSuite(t *testing.T) {
	suite.Run(t, new(ListAvailableDriversSuite))
}

func (s *ListAvailableDriversSuite) SetupTest() {
	s.db = testutil.OpenSQLite(s.T())
	s.seed = testutil.NewSeeder(s.T(), s.db)
}

func (s *ListAvailableDriversSuite) handle(policy services.RankingPolicy) []queries.AvailableDriver {
	ranker, err := services.NewCandidateRanker(services.NewLifecycleEngine(), policy)
	s.Require().NoError(err)
	handler := queries.NewListAvailableDriversQueryHandler(s.db, ranker)

	admin := identity.Principal{UserID: kernel.NewUUID(), Role: identity.RoleAdmin}
	res, err := handler.Handle(context.Background(), queries.NewListAvailableDriversQuery(admin))
	s.Require().NoError(err)
	return res
}

func driverNames(list []queries.AvailableDriver) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Name)
	}
	return out
}

func (s *ListAvailableDriversSuite) TestFiltersOutUnassignableDrivers() {
	s.seed.Driver(testutil.DriverSpec{Name: "Online", Phone: "+911", Online: true})
	s.seed.Driver(testutil.DriverSpec{Name: "Helper", Role: driver.RolePickupHelper, Online: true})
	s.seed.Driver(testutil.DriverSpec{Name: "Offline"})
	s.seed.Driver(testutil.DriverSpec{Name: "Pending", Verification: driver.VerificationPending, Online: true})
	s.seed.Driver(testutil.DriverSpec{Name: "Rejected", Verification: driver.VerificationRejected, Online: true})
	s.seed.Driver(testutil.DriverSpec{Name: "Deleted", Online: true, Deleted: true})
	wrongRole := s.seed.Driver(testutil.DriverSpec{Name: "Seller", Online: true})
	s.Require().NoError(s.db.Exec("UPDATE drivers SET role = ? WHERE id = ?", "SELLER", wrongRole.ID().Bytes()).Error)

	res := s.handle(services.RankByName)

	s.Equal([]string{"Helper", "Online"}, driverNames(res))
	s.Equal(driver.RolePickupHelper, res[0].Role)
	s.Equal("+911", res[1].Phone)
}

func (s *ListAvailableDriversSuite) TestActiveOrderCountCoversOnlyActiveLiveOrders() {
	d := s.seed.Driver(testutil.DriverSpec{Name: "Ravi", Online: true})
	id := d.ID()

	for _, status := range []order.Status{order.Picking, order.Picked, order.OutForDelivery} {
		s.seed.Order(testutil.OrderSpec{Status: status, DriverID: &id})
	}
	for _, status := range []order.Status{order.Pending, order.Confirmed, order.Delivered, order.Cancelled} {
		s.seed.Order(testutil.OrderSpec{Status: status, DriverID: &id})
	}
	s.seed.Order(testutil.OrderSpec{Status: order.Picking, DriverID: &id, Deleted: true})

	res := s.handle(services.RankByLoad)

	s.Require().Len(res, 1)
	s.Equal(id, res[0].ID)
	s.Equal(3, res[0].ActiveOrderCount)
}

func (s *ListAvailableDriversSuite) TestRankingPolicies() {
	busy := s.seed.Driver(testutil.DriverSpec{Name: "Anil", Online: true})
	busyID := busy.ID()
	s.seed.Order(testutil.OrderSpec{Status: order.OutForDelivery, DriverID: &busyID})
	s.seed.Order(testutil.OrderSpec{Status: order.Picked, DriverID: &busyID})

	some := s.seed.Driver(testutil.DriverSpec{Name: "Zoya", Online: true})
	someID := some.ID()
	s.seed.Order(testutil.OrderSpec{Status: order.Picking, DriverID: &someID})

	s.seed.Driver(testutil.DriverSpec{Name: "meera", Online: true})

	s.Equal([]string{"meera", "Zoya", "Anil"}, driverNames(s.handle(services.RankByLoad)))
	s.Equal([]string{"Anil", "meera", "Zoya"}, driverNames(s.handle(services.RankByName)))
}

func (s *ListAvailableDriversSuite) TestEmpty() {
	res := s.handle(services.RankByLoad)

	s.NotNil(res)
	s.Empty(res)
}

func TestListAvailableDriversQueryHandler_Forbidden(t *testing.T) {
	ranker, err := services.NewCandidateRanker(services.NewLifecycleEngine(), services.RankByLoad)
	require.NoError(t, err)
	handler := queries.NewListAvailableDriversQueryHandler(testutil.OpenSQLite(t), ranker)

	driverPrincipal := identity.Principal{UserID: kernel.NewUUID(), Role: identity.RoleDeliveryDriver}
	_, err = handler.Handle(context.Background(), queries.NewListAvailableDriversQuery(driverPrincipal))

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestListAvailableDriversQueryHandler_NotConstructed(t *testing.T) {
	ranker, err := services.NewCandidateRanker(services.NewLifecycleEngine(), services.RankByLoad)
	require.NoError(t, err)
	handler := queries.NewListAvailableDriversQueryHandler(testutil.OpenSQLite(t), ranker)

	_, err = handler.Handle(context.Background(), queries.ListAvailableDriversQuery{})

	require.ErrorIs(t, err, queries.ErrListAvailableDriversQueryIsNotConstructed)
}
