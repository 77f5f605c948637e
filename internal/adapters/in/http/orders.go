package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	params, err := bindListOrdersParams(c)
	if err != nil {
		return s.fail(c, err)
	}

	status, err := queries.ParseStatusFilter(stringOr(params.Status, ""))
	if err != nil {
		return s.fail(c, err)
	}
	paymentStatus, err := queries.ParsePaymentStatusFilter(stringOr(params.PaymentStatus, ""))
	if err != nil {
		return s.fail(c, err)
	}
	sort, err := queries.ParseListOrdersSort(stringOr(params.Sort, ""), stringOr(params.Direction, ""))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListOrdersQuery(principalFrom(c), queries.ListOrdersFilter{
		Status:        status,
		PaymentStatus: paymentStatus,
		Search:        stringOr(params.Search, ""),
		CreatedFrom:   params.createdFrom(),
		CreatedTo:     params.createdTo(),
	}, sort, params.page(), params.limit())
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	body := OrderList{
		Items: make([]OrderListItem, len(res.Items)),
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   res.PageSize,
			Total:      res.Total,
			TotalPages: res.TotalPages,
		},
		StatusCounts:        make(map[string]int64, len(res.StatusCounts)),
		PaymentStatusCounts: make(map[string]int64, len(res.PaymentStatusCounts)),
	}
	for i, item := range res.Items {
		body.Items[i] = OrderListItem{
			ID:            item.ID.Bytes(),
			Number:        item.Number,
			Status:        item.Status.String(),
			PaymentStatus: item.PaymentStatus.String(),
			Customer: CustomerSummary{
				ID:    item.CustomerID.Bytes(),
				Name:  item.CustomerName,
				Email: item.CustomerEmail,
			},
			DriverID:  optionalID(item.DriverID),
			Total:     item.Total.MinorUnits(),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	for k, v := range res.StatusCounts {
		body.StatusCounts[k.String()] = v
	}
	for k, v := range res.PaymentStatusCounts {
		body.PaymentStatusCounts[k.String()] = v
	}

	return c.JSON(http.StatusOK, body)
}

// GetOrderDetails handles GET /api/v1/orders/:id.
func (s *Server) GetOrderDetails(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderDetailsQuery(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.handlers.GetOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	body := OrderDetails{
		ID:            res.ID.Bytes(),
		Number:        res.Number,
		Status:        res.Status.String(),
		PaymentStatus: res.PaymentStatus.String(),
		SellerName:    res.SellerName,
		Customer: CustomerSummary{
			ID:    res.Customer.ID.Bytes(),
			Name:  res.Customer.Name,
			Email: res.Customer.Email,
			Phone: res.Customer.Phone,
		},
		Address: Address{
			Recipient:  res.Address.Recipient,
			Phone:      res.Address.Phone,
			Line1:      res.Address.Line1,
			Line2:      res.Address.Line2,
			City:       res.Address.City,
			State:      res.Address.State,
			PostalCode: res.Address.PostalCode,
		},
		Items:              make([]OrderLine, len(res.Items)),
		Subtotal:           res.Subtotal.MinorUnits(),
		DeliveryFee:        res.DeliveryFee.MinorUnits(),
		Taxes:              res.Taxes.MinorUnits(),
		Total:              res.Total.MinorUnits(),
		Notes:              res.Notes,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
		DeliveredAt:        res.DeliveredAt,
	}
	if res.Driver != nil {
		body.Driver = &CustomerSummary{
			ID:    res.Driver.ID.Bytes(),
			Name:  res.Driver.Name,
			Phone: res.Driver.Phone,
		}
	}
	for i, line := range res.Items {
		body.Items[i] = OrderLine{
			ID:          line.ID.Bytes(),
			VariantID:   line.VariantID.Bytes(),
			ProductName: line.ProductName,
			VariantName: line.VariantName,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.MinorUnits(),
			LineTotal:   line.LineTotal.MinorUnits(),
			Image:       line.Image,
		}
	}

	return c.JSON(http.StatusOK, body)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req ChangeStatusRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(principalFrom(c), id, status, req.Notes, req.CancellationReason, req.Force)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ChangeStatusResponse{
		ID:        res.ID.Bytes(),
		Status:    res.Status.String(),
		UpdatedAt: res.UpdatedAt,
	})
}

// AssignDriver handles PATCH /api/v1/orders/:id/driver.
func (s *Server) AssignDriver(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req AssignDriverRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	driverID, err := kernel.UUIDFromBytes(req.DriverID[:])
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignDriverCommand(principalFrom(c), id, driverID)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.handlers.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, AssignDriverResponse{
		ID:       res.OrderID.Bytes(),
		DriverID: res.DriverID.Bytes(),
	})
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := s.bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	addr, err := order.NewAddress(
		req.Address.Recipient,
		req.Address.Phone,
		req.Address.Line1,
		req.Address.Line2,
		req.Address.City,
		req.Address.State,
		req.Address.PostalCode,
	)
	if err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		variantID, idErr := kernel.UUIDFromBytes(item.VariantID[:])
		if idErr != nil {
			return s.fail(c, idErr)
		}
		items = append(items, commands.PlaceOrderItem{VariantID: variantID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceOrderCommand(principalFrom(c), kernel.NewUUID(), addr, items)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, PlaceOrderResponse{
		ID:     res.ID.Bytes(),
		Number: res.Number,
		Total:  res.Total.MinorUnits(),
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bindBody decodes and validates a JSON request body.
func (s *Server) bindBody(c echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return badRequest("request body", err)
	}
	return c.Validate(dest)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}
