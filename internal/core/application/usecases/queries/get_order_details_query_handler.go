package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler assembles the admin order screen from the order, its
// line items and the catalog tables.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

type orderHeaderRow struct {
	ID                uuid.UUID
	Number            string
	Status            string
	PaymentStatus     string
	CustomerID        uuid.UUID
	CustomerName      *string
	CustomerEmail     *string
	CustomerPhone     *string
	DriverID          uuid.NullUUID
	DriverName        *string
	DriverPhone       *string
	AddressRecipient  string
	AddressPhone      string
	AddressLine1      string
	AddressLine2      string
	AddressCity       string
	AddressState      string
	AddressPostalCode string
	Subtotal          int64
	DeliveryFee       int64
	Taxes             int64
	Total             int64
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeliveredAt       *time.Time
}

type orderLineRow struct {
	ID          uuid.UUID
	VariantID   uuid.UUID
	Quantity    int
	UnitPrice   int64
	LineTotal   int64
	VariantName *string
	SKU         *string `gorm:"column:sku"`
	ProductName *string
	Images      []byte
	SellerName  *string
}

// Handle returns the order, or errs.ErrObjectNotFound when it does not exist or is deleted.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsResponse{}, err
	}
	if err := identity.RequireAdmin(query.Principal(), "view order details"); err != nil {
		return GetOrderDetailsResponse{}, err
	}

	orderID := query.OrderID().Bytes()

	var headers []orderHeaderRow
	err := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.number, o.status, o.payment_status, o.customer_id,
			c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone,
			o.driver_id, du.name AS driver_name, du.phone AS driver_phone,
			o.address_recipient, o.address_phone, o.address_line1, o.address_line2,
			o.address_city, o.address_state, o.address_postal_code,
			o.subtotal, o.delivery_fee, o.taxes, o.total, o.notes,
			o.created_at, o.updated_at, o.delivered_at`).
		Joins("LEFT JOIN users AS c ON c.id = o.customer_id").
		Joins("LEFT JOIN drivers AS d ON d.id = o.driver_id").
		Joins("LEFT JOIN users AS du ON du.id = d.user_id").
		Where("o.id = ? AND o.deleted_at IS NULL", orderID).
		Limit(1).
		Scan(&headers).Error
	if err != nil {
		return GetOrderDetailsResponse{}, fmt.Errorf("load order %s: %w", query.OrderID(), err)
	}
	if len(headers) == 0 {
		return GetOrderDetailsResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var lines []orderLineRow
	err = h.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.id, oi.variant_id, oi.quantity, oi.unit_price, oi.line_total,
			v.name AS variant_name, v.sku, p.name AS product_name, p.images,
			s.display_name AS seller_name`).
		Joins("LEFT JOIN product_variants AS v ON v.id = oi.variant_id").
		Joins("LEFT JOIN products AS p ON p.id = v.product_id").
		Joins("LEFT JOIN sellers AS s ON s.id = p.seller_id AND s.deleted_at IS NULL").
		Where("oi.order_id = ?", orderID).
		Order("oi.position").
		Scan(&lines).Error
	if err != nil {
		return GetOrderDetailsResponse{}, fmt.Errorf("load items of order %s: %w", query.OrderID(), err)
	}

	return buildOrderDetails(headers[0], lines)
}

func buildOrderDetails(header orderHeaderRow, lines []orderLineRow) (GetOrderDetailsResponse, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return GetOrderDetailsResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(header.CustomerID[:])
	if err != nil {
		return GetOrderDetailsResponse{}, err
	}

	res := GetOrderDetailsResponse{
		ID:            id,
		Number:        header.Number,
		Status:        order.Status(header.Status),
		PaymentStatus: order.PaymentStatus(header.PaymentStatus),
		SellerName:    UnknownSeller,
		Customer: PartySummary{
			ID:    customerID,
			Name:  deref(header.CustomerName),
			Email: deref(header.CustomerEmail),
			Phone: deref(header.CustomerPhone),
		},
		Address: AddressDetails{
			Recipient:  header.AddressRecipient,
			Phone:      header.AddressPhone,
			Line1:      header.AddressLine1,
			Line2:      header.AddressLine2,
			City:       header.AddressCity,
			State:      header.AddressState,
			PostalCode: header.AddressPostalCode,
		},
		Items:       make([]OrderLineDetails, 0, len(lines)),
		Subtotal:    kernel.Money(header.Subtotal),
		DeliveryFee: kernel.Money(header.DeliveryFee),
		Taxes:       kernel.Money(header.Taxes),
		Total:       kernel.Money(header.Total),
		Notes:       header.Notes,
		CreatedAt:   header.CreatedAt.UTC(),
		UpdatedAt:   header.UpdatedAt.UTC(),
	}
	if header.DeliveredAt != nil {
		at := header.DeliveredAt.UTC()
		res.DeliveredAt = &at
	}
	if res.Status == order.Cancelled {
		res.CancellationReason = header.Notes
	}

	if header.DriverID.Valid {
		driverID, dErr := kernel.UUIDFromBytes(header.DriverID.UUID[:])
		if dErr != nil {
			return GetOrderDetailsResponse{}, dErr
		}
		res.Driver = &PartySummary{
			ID:    driverID,
			Name:  deref(header.DriverName),
			Phone: deref(header.DriverPhone),
		}
	}

	for i, line := range lines {
		if i == 0 && line.SellerName != nil && strings.TrimSpace(*line.SellerName) != "" {
			res.SellerName = *line.SellerName
		}

		lineID, lErr := kernel.UUIDFromBytes(line.ID[:])
		if lErr != nil {
			return GetOrderDetailsResponse{}, lErr
		}
		variantID, vErr := kernel.UUIDFromBytes(line.VariantID[:])
		if vErr != nil {
			return GetOrderDetailsResponse{}, vErr
		}

		res.Items = append(res.Items, OrderLineDetails{
			ID:          lineID,
			VariantID:   variantID,
			ProductName: deref(line.ProductName),
			VariantName: deref(line.VariantName),
			SKU:         deref(line.SKU),
			Quantity:    line.Quantity,
			UnitPrice:   kernel.Money(line.UnitPrice),
			LineTotal:   kernel.Money(line.LineTotal),
			Image:       firstImage(line.Images),
		})
	}

	return res, nil
}

// firstImage extracts the first URL of a product image list. Anything that is not a
// JSON array of strings yields nil.
func firstImage(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil || len(images) == 0 {
		return nil
	}
	first := images[0]
	return &first
}
