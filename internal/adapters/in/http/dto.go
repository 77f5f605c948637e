package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type CustomerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

type OrderListItem struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"orderNumber"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Customer      CustomerSummary `json:"customer"`
	DriverID      *uuid.UUID      `json:"driverId,omitempty"`
	Total         int64           `json:"totalAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type OrderList struct {
	Items               []OrderListItem  `json:"items"`
	Pagination          Pagination       `json:"pagination"`
	StatusCounts        map[string]int64 `json:"statusCounts"`
	PaymentStatusCounts map[string]int64 `json:"paymentStatusCounts"`
}

type OrderLine struct {
	ID          uuid.UUID `json:"id"`
	VariantID   uuid.UUID `json:"variantId"`
	ProductName string    `json:"productName"`
	VariantName string    `json:"variantName,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	LineTotal   int64     `json:"lineTotal"`
	Image       *string   `json:"image"`
}

type Address struct {
	Recipient  string `json:"recipient" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2,omitempty" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
}

type OrderDetails struct {
	ID                 uuid.UUID        `json:"id"`
	Number             string           `json:"orderNumber"`
	Status             string           `json:"status"`
	PaymentStatus      string           `json:"paymentStatus"`
	SellerName         string           `json:"sellerName"`
	Customer           CustomerSummary  `json:"customer"`
	Driver             *CustomerSummary `json:"driver,omitempty"`
	Address            Address          `json:"address"`
	Items              []OrderLine      `json:"items"`
	Subtotal           int64            `json:"subtotal"`
	DeliveryFee        int64            `json:"deliveryFee"`
	Taxes              int64            `json:"taxes"`
	Total              int64            `json:"totalAmount"`
	Notes              string           `json:"notes,omitempty"`
	CancellationReason string           `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	DeliveredAt        *time.Time       `json:"deliveredAt,omitempty"`
}

type ChangeStatusRequest struct {
	Status             string `json:"status" validate:"required"`
	Notes              string `json:"notes" validate:"max=2000"`
	CancellationReason string `json:"cancellationReason" validate:"max=2000"`
	Force              bool   `json:"force"`
}

type ChangeStatusResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driverId" validate:"required"`
}

type AssignDriverResponse struct {
	ID       uuid.UUID `json:"id"`
	DriverID uuid.UUID `json:"driverId"`
}

type AvailableDriver struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Role             string    `json:"role"`
	ActiveOrderCount int       `json:"activeOrderCount"`
}

type PlaceOrderItem struct {
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=1000"`
}

type PlaceOrderRequest struct {
	Address Address          `json:"address"`
	Items   []PlaceOrderItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type PlaceOrderResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"orderNumber"`
	Total  int64     `json:"totalAmount"`
}

type RegisterDriverRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=DELIVERY_DRIVER PICKUP_HELPER delivery_driver pickup_helper"`
}

type Driver struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Role               string     `json:"role"`
	VerificationStatus string     `json:"verificationStatus"`
	IsOnline           bool       `json:"isOnline"`
	LastSeenAt         *time.Time `json:"lastSeenAt,omitempty"`
}

type SetVerificationRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type HeartbeatRequest struct {
	Online *bool `json:"online" validate:"required"`
}
