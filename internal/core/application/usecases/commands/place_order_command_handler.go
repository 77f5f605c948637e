package commands

import (
	"context"
	"fmt"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// PlaceOrderResult identifies the placed order.
type PlaceOrderResult struct {
	ID     kernel.UUID
	Number string
	Total  kernel.Money
}

// PlaceOrderCommandHandler creates PENDING orders priced from the catalog.
//
// The delivery fee and the tax rate come from the admin settings blob, which is
// read once per order.
type PlaceOrderCommandHandler struct {
	uowFactory CatalogOrderUoWFactory
	settings   ports.SettingsProvider
	now        Clock
}

// NewPlaceOrderCommandHandler creates the handler. A nil clock means time.Now.
func NewPlaceOrderCommandHandler(
	uowFactory CatalogOrderUoWFactory,
	settings ports.SettingsProvider,
	clock Clock,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		now:        orSystemClock(clock),
	}
}

// Handle prices and persists the order. An unknown variant is errs.ErrObjectNotFound.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}
	if err := identity.RequireAuthenticated(cmd.Principal(), "place order"); err != nil {
		return PlaceOrderResult{}, err
	}

	cfg, err := h.settings.Current(ctx)
	if err != nil {
		return PlaceOrderResult{}, fmt.Errorf("read admin settings: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.CatalogRepository()

	customer, err := catalog.GetUser(ctx, cmd.Principal().UserID)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	requested := cmd.Items()
	variantIDs := make([]kernel.UUID, 0, len(requested))
	for _, item := range requested {
		variantIDs = append(variantIDs, item.VariantID)
	}

	prices, err := catalog.VariantPrices(ctx, variantIDs)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	lineItems := make([]order.LineItem, 0, len(requested))
	for _, item := range requested {
		price, ok := prices[item.VariantID]
		if !ok {
			return PlaceOrderResult{}, errs.NewObjectNotFoundError("product variant", item.VariantID.String())
		}
		li, liErr := order.NewLineItem(kernel.NewUUID(), item.VariantID, item.Quantity, price)
		if liErr != nil {
			return PlaceOrderResult{}, liErr
		}
		lineItems = append(lineItems, li)
	}

	subtotal := kernel.Zero
	for _, li := range lineItems {
		subtotal = subtotal.Add(li.LineTotal())
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		customer.ID,
		cmd.Address(),
		lineItems,
		cfg.DefaultDeliveryFee,
		cfg.TaxOn(subtotal),
		h.now(),
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{ID: o.ID(), Number: o.Number(), Total: o.Total()}, nil
}
