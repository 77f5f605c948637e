package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListAvailableDrivers handles GET /api/v1/drivers/available.
func (s *Server) ListAvailableDrivers(c echo.Context) error {
	query := queries.NewListAvailableDriversQuery(principalFrom(c))

	drivers, err := s.handlers.ListAvailableDrivers.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]AvailableDriver, len(drivers))
	for i, d := range drivers {
		response[i] = AvailableDriver{
			ID:               d.ID.Bytes(),
			Name:             d.Name,
			Phone:            d.Phone,
			Role:             d.Role.String(),
			ActiveOrderCount: d.ActiveOrderCount,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(c echo.Context) error {
	var req RegisterDriverRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	userID, err := kernel.UUIDFromBytes(req.UserID[:])
	if err != nil {
		return s.fail(c, err)
	}
	role, err := driver.ParseRole(req.Role)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterDriverCommand(principalFrom(c), kernel.NewUUID(), userID, role)
	if err != nil {
		return s.fail(c, err)
	}
	d, err := s.handlers.RegisterDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Driver{
		ID:                 d.ID().Bytes(),
		UserID:             d.UserID().Bytes(),
		Name:               d.Name(),
		Phone:              d.Phone(),
		Role:               d.Role().String(),
		VerificationStatus: d.Verification().String(),
		IsOnline:           d.IsOnline(),
		LastSeenAt:         d.LastSeenAt(),
	})
}

// SetDriverVerification handles PATCH /api/v1/drivers/:id/verification.
func (s *Server) SetDriverVerification(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req SetVerificationRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetDriverVerificationCommand(principalFrom(c), id, req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.SetDriverVerification.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordHeartbeat handles POST /api/v1/drivers/presence. The caller reports its own
// presence; there is no driver id in the request.
func (s *Server) RecordHeartbeat(c echo.Context) error {
	var req HeartbeatRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd := commands.NewRecordDriverHeartbeatCommand(principalFrom(c), *req.Online)
	if err := s.handlers.RecordHeartbeat.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
