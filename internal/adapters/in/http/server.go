package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// APIPrefix is the mount point of every fulfillment route.
const APIPrefix = "/api/v1"

// Handlers groups the use cases the HTTP adapter exposes.
type Handlers struct {
	// Command handlers
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	AssignDriver          commands.AssignDriverCommandHandler
	PlaceOrder            commands.PlaceOrderCommandHandler
	DeleteOrder           commands.DeleteOrderCommandHandler
	RegisterDriver        commands.RegisterDriverCommandHandler
	SetDriverVerification commands.SetDriverVerificationCommandHandler
	RecordHeartbeat       commands.RecordDriverHeartbeatCommandHandler

	// Query handlers
	ListOrders           queries.ListOrdersQueryHandler
	GetOrderDetails      queries.GetOrderDetailsQueryHandler
	ListAvailableDrivers queries.ListAvailableDriversQueryHandler
}

// Server turns HTTP requests into commands and queries. It coordinates between the
// echo handlers and the application use cases and owns no business rules.
type Server struct {
	handlers  Handlers
	settings  ports.SettingsProvider
	jwtSecret string
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, settings ports.SettingsProvider, jwtSecret string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers:  handlers,
		settings:  settings,
		jwtSecret: jwtSecret,
		logger:    logger.With("component", "HTTPServer"),
	}
}

// NewEcho builds an echo instance with every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	s.Register(e)
	return e
}

// Register mounts the health check, the API docs and the /api/v1 routes on e.
// Role checks run per route, after authentication and the maintenance guard.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix, NewAuthMiddleware(s.jwtSecret), s.maintenanceGuard(s.settings))

	admin := func(action string) echo.MiddlewareFunc {
		return s.requireRole(action, identity.RoleAdmin)
	}

	api.GET("/orders", s.ListOrders, admin("list orders"))
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:id", s.GetOrderDetails, admin("view order details"))
	api.DELETE("/orders/:id", s.DeleteOrder, admin("delete order"))
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus, admin("change order status"))
	api.PATCH("/orders/:id/driver", s.AssignDriver, admin("assign driver"))

	api.GET("/drivers/available", s.ListAvailableDrivers, admin("list available drivers"))
	api.POST("/drivers", s.RegisterDriver, admin("register driver"))
	api.PATCH("/drivers/:id/verification", s.SetDriverVerification, admin("set driver verification"))
	api.POST("/drivers/presence", s.RecordHeartbeat,
		s.requireRole("report driver presence", identity.RoleDeliveryDriver, identity.RolePickupHelper))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, Health{Status: "Healthy"})
}
