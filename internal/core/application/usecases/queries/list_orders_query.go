// Package queries contains the read side of the fulfillment core: the admin query
// facade and the assignment candidate list. Handlers read through gorm directly and
// never load aggregates they do not need.
package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	MinPageSize = 1
	MaxPageSize = 100
)

// filterAll is the wire value meaning "no filter" for status and payment status.
const filterAll = "ALL"

// OrderSortField selects the ordering of ListOrders.
type OrderSortField string

const (
	SortByRecency OrderSortField = "recency"
	SortByAmount  OrderSortField = "amount"
	SortByStatus  OrderSortField = "status"
)

// SortDirection is asc or desc. Empty picks the field's default.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListOrdersFilter narrows the order list. Zero values mean "no filter".
type ListOrdersFilter struct {
	Status        order.Status
	PaymentStatus order.PaymentStatus
	// Search is matched case-insensitively as a substring of the order number, the
	// customer name and the customer email.
	Search string
	// CreatedFrom and CreatedTo bound createdAt, both ends inclusive.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ListOrdersSort orders the list. Recency and amount default to descending,
// status to ascending. The order id is always the final tiebreak.
type ListOrdersSort struct {
	Field     OrderSortField
	Direction SortDirection
}

// ParseStatusFilter turns a wire value into a status filter. "ALL" and "" mean no filter.
func ParseStatusFilter(s string) (order.Status, error) {
	if isAll(s) {
		return "", nil
	}
	return order.ParseStatus(s)
}

// ParsePaymentStatusFilter turns a wire value into a payment status filter.
func ParsePaymentStatusFilter(s string) (order.PaymentStatus, error) {
	if isAll(s) {
		return "", nil
	}
	return order.ParsePaymentStatus(s)
}

// ParseListOrdersSort accepts a sort field and direction in any casing.
func ParseListOrdersSort(field, direction string) (ListOrdersSort, error) {
	s := ListOrdersSort{
		Field:     OrderSortField(strings.ToLower(strings.TrimSpace(field))),
		Direction: SortDirection(strings.ToLower(strings.TrimSpace(direction))),
	}
	if s.Field == "" {
		s.Field = SortByRecency
	}
	if err := s.validate(); err != nil {
		return ListOrdersSort{}, err
	}
	return s, nil
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, filterAll)
}

func (s ListOrdersSort) validate() error {
	var errList []error
	switch s.Field {
	case SortByRecency, SortByAmount, SortByStatus:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"sort", fmt.Errorf("%q is not one of recency, amount, status", string(s.Field))))
	}
	switch s.Direction {
	case "", SortAsc, SortDesc:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"direction", fmt.Errorf("%q is not one of asc, desc", string(s.Direction))))
	}
	return errors.Join(errList...)
}

// descending resolves the effective direction.
func (s ListOrdersSort) descending() bool {
	if s.Direction != "" {
		return s.Direction == SortDesc
	}
	return s.Field != SortByStatus
}

// ListOrdersQuery is the paginated, filterable admin order list.
//
// Example:
//
//	q, err := NewListOrdersQuery(principal, ListOrdersFilter{Status: order.Pending},
//	    ListOrdersSort{Field: SortByAmount}, 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, q)
type ListOrdersQuery struct {
	principal identity.Principal
	filter    ListOrdersFilter
	sort      ListOrdersSort
	page      int
	pageSize  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filter, the sort and the page window.
// page must be >= 1 and pageSize within [MinPageSize, MaxPageSize].
func NewListOrdersQuery(
	principal identity.Principal,
	filter ListOrdersFilter,
	sort ListOrdersSort,
	page int,
	pageSize int,
) (ListOrdersQuery, error) {
	if sort.Field == "" {
		sort.Field = SortByRecency
	}
	filter.Search = strings.TrimSpace(filter.Search)

	errList := []error{sort.validate()}
	if filter.Status != "" {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.PaymentStatus != "" {
		errList = append(errList, filter.PaymentStatus.Validate())
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"date range", errors.New("from is after to")))
	}
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded"))
	}
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("pageSize", pageSize, MinPageSize, MaxPageSize))
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		principal: principal,
		filter:    filter,
		sort:      sort,
		page:      page,
		pageSize:  pageSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Principal() identity.Principal { return q.principal }
func (q ListOrdersQuery) Filter() ListOrdersFilter      { return q.filter }
func (q ListOrdersQuery) Sort() ListOrdersSort          { return q.sort }
func (q ListOrdersQuery) Page() int                     { return q.page }
func (q ListOrdersQuery) PageSize() int                 { return q.pageSize }

// OrderListItem is one row of the admin order list.
type OrderListItem struct {
	ID            kernel.UUID
	Number        string
	Status        order.Status
	PaymentStatus order.PaymentStatus
	CustomerID    kernel.UUID
	CustomerName  string
	CustomerEmail string
	DriverID      *kernel.UUID
	Total         kernel.Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListOrdersResponse is one page of orders plus dashboard counters.
//
// StatusCounts and PaymentStatusCounts cover every live order regardless of the
// filter, and list every known status (zero when absent).
type ListOrdersResponse struct {
	Items               []OrderListItem
	Total               int64
	TotalPages          int
	Page                int
	PageSize            int
	StatusCounts        map[order.Status]int64
	PaymentStatusCounts map[order.PaymentStatus]int64
}
