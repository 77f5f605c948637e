package http

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultPageSize = 20

// pathUUID binds a UUID path parameter the way generated oapi-codegen servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, badRequest(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// listOrdersParams are the query parameters of GET /orders.
type listOrdersParams struct {
	Page          *int
	Limit         *int
	Status        *string
	PaymentStatus *string
	Search        *string
	From          *openapi_types.Date
	To            *openapi_types.Date
	Sort          *string
	Direction     *string
}

func bindListOrdersParams(c echo.Context) (listOrdersParams, error) {
	var p listOrdersParams
	q := c.QueryParams()

	bindings := []struct {
		name string
		dest any
	}{
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"status", &p.Status},
		{"paymentStatus", &p.PaymentStatus},
		{"search", &p.Search},
		{"from", &p.From},
		{"to", &p.To},
		{"sort", &p.Sort},
		{"direction", &p.Direction},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listOrdersParams{}, badRequest(b.name, err)
		}
	}
	return p, nil
}

func (p listOrdersParams) page() int {
	if p.Page == nil {
		return 1
	}
	return *p.Page
}

func (p listOrdersParams) limit() int {
	if p.Limit == nil {
		return defaultPageSize
	}
	return *p.Limit
}

// createdFrom is the first instant of the from date, in UTC.
func (p listOrdersParams) createdFrom() *time.Time {
	if p.From == nil {
		return nil
	}
	t := startOfDay(p.From.Time)
	return &t
}

// createdTo is the last instant of the to date, so the whole day is included.
func (p listOrdersParams) createdTo() *time.Time {
	if p.To == nil {
		return nil
	}
	t := startOfDay(p.To.Time).Add(24*time.Hour - time.Nanosecond)
	return &t
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
