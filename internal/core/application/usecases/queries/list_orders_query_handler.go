package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOrdersQueryHandler serves the admin order list.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d orders, %d pending\n", len(page.Items), page.Total, page.StatusCounts[order.Pending])
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates the handler.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderListRow struct {
	ID            uuid.UUID
	Number        string
	Status        string
	PaymentStatus string
	CustomerID    uuid.UUID
	CustomerName  *string
	CustomerEmail *string
	DriverID      uuid.NullUUID
	Total         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type groupCountRow struct {
	Label string
	Count int64
}

// Handle returns one page of live orders. A page past the end is empty, not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}
	if err := identity.RequireAdmin(query.Principal(), "list orders"); err != nil {
		return ListOrdersResponse{}, err
	}

	filtered := h.filteredOrders(ctx, query.Filter()).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return ListOrdersResponse{}, fmt.Errorf("count orders: %w", err)
	}

	var rows []orderListRow
	err := filtered.
		Select(`o.id, o.number, o.status, o.payment_status, o.customer_id,
			c.name AS customer_name, c.email AS customer_email,
			o.driver_id, o.total, o.created_at, o.updated_at`).
		Clauses(orderBy(query.Sort())).
		Limit(query.PageSize()).
		Offset((query.Page() - 1) * query.PageSize()).
		Scan(&rows).Error
	if err != nil {
		return ListOrdersResponse{}, fmt.Errorf("list orders: %w", err)
	}

	items := make([]OrderListItem, 0, len(rows))
	for _, row := range rows {
		item, mapErr := row.toItem()
		if mapErr != nil {
			return ListOrdersResponse{}, mapErr
		}
		items = append(items, item)
	}

	statusCounts, paymentCounts, err := h.groupCounts(ctx)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	return ListOrdersResponse{
		Items:               items,
		Total:               total,
		TotalPages:          totalPages(total, query.PageSize()),
		Page:                query.Page(),
		PageSize:            query.PageSize(),
		StatusCounts:        statusCounts,
		PaymentStatusCounts: paymentCounts,
	}, nil
}

func (h ListOrdersQueryHandler) filteredOrders(ctx context.Context, f ListOrdersFilter) *gorm.DB {
	tx := h.db.WithContext(ctx).
		Table("orders AS o").
		Joins("LEFT JOIN users AS c ON c.id = o.customer_id").
		Where("o.deleted_at IS NULL")

	if f.Status != "" {
		tx = tx.Where("o.status = ?", f.Status.String())
	}
	if f.PaymentStatus != "" {
		tx = tx.Where("o.payment_status = ?", f.PaymentStatus.String())
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		tx = tx.Where(
			`(LOWER(o.number) LIKE ? ESCAPE '\' OR LOWER(c.name) LIKE ? ESCAPE '\' OR LOWER(c.email) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if f.CreatedFrom != nil {
		tx = tx.Where("o.created_at >= ?", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		tx = tx.Where("o.created_at <= ?", f.CreatedTo.UTC())
	}
	return tx
}

// groupCounts counts live orders by status and by payment status, ignoring filters.
func (h ListOrdersQueryHandler) groupCounts(
	ctx context.Context,
) (map[order.Status]int64, map[order.PaymentStatus]int64, error) {
	statusCounts := make(map[order.Status]int64, len(order.Statuses()))
	for _, s := range order.Statuses() {
		statusCounts[s] = 0
	}
	paymentCounts := make(map[order.PaymentStatus]int64, len(order.PaymentStatuses()))
	for _, s := range order.PaymentStatuses() {
		paymentCounts[s] = 0
	}

	var byStatus []groupCountRow
	if err := h.db.WithContext(ctx).
		Table("orders").
		Select("status AS label, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, nil, fmt.Errorf("count orders by status: %w", err)
	}
	for _, row := range byStatus {
		statusCounts[order.Status(row.Label)] = row.Count
	}

	var byPayment []groupCountRow
	if err := h.db.WithContext(ctx).
		Table("orders").
		Select("payment_status AS label, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group("payment_status").
		Scan(&byPayment).Error; err != nil {
		return nil, nil, fmt.Errorf("count orders by payment status: %w", err)
	}
	for _, row := range byPayment {
		paymentCounts[order.PaymentStatus(row.Label)] = row.Count
	}

	return statusCounts, paymentCounts, nil
}

func orderBy(s ListOrdersSort) clause.OrderBy {
	column := "created_at"
	switch s.Field {
	case SortByAmount:
		column = "total"
	case SortByStatus:
		column = "status"
	case SortByRecency:
	}
	desc := s.descending()
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: "o", Name: column}, Desc: desc},
		{Column: clause.Column{Table: "o", Name: "id"}, Desc: desc},
	}}
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r orderListRow) toItem() (OrderListItem, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderListItem{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderListItem{}, err
	}
	var driverID *kernel.UUID
	if r.DriverID.Valid {
		d, dErr := kernel.UUIDFromBytes(r.DriverID.UUID[:])
		if dErr != nil {
			return OrderListItem{}, dErr
		}
		driverID = &d
	}

	return OrderListItem{
		ID:            id,
		Number:        r.Number,
		Status:        order.Status(r.Status),
		PaymentStatus: order.PaymentStatus(r.PaymentStatus),
		CustomerID:    customerID,
		CustomerName:  deref(r.CustomerName),
		CustomerEmail: deref(r.CustomerEmail),
		DriverID:      driverID,
		Total:         kernel.Money(r.Total),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
