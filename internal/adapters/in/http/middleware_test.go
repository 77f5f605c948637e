package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/testutil"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubSettings struct {
	current settings.Settings
	err     error
}

func (s stubSettings) Current(context.Context) (settings.Settings, error) {
	return s.current, s.err
}

func newTestServer(provider stubSettings) *Server {
	return NewServer(Handlers{}, provider, testSecret, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// echoWithWhoAmI mounts a route behind the API middleware chain that echoes
// the principal it received.
func echoWithWhoAmI(s *Server) *echo.Echo {
	e := echo.New()
	e.Validator = newRequestValidator()
	g := e.Group(APIPrefix, NewAuthMiddleware(s.jwtSecret), s.maintenanceGuard(s.settings))
	whoami := func(c echo.Context) error {
		p := principalFrom(c)
		return c.String(http.StatusOK, fmt.Sprintf("%s|%s", p.UserID, p.Role))
	}
	g.GET("/whoami", whoami)
	g.POST("/whoami", whoami)
	return e
}

func doRequest(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	e := echoWithWhoAmI(newTestServer(stubSettings{}))
	userID := kernel.NewUUID()

	t.Run("valid token yields principal", func(t *testing.T) {
		token := testutil.GenerateJWTHS256(t, testSecret, userID.String(), "admin")

		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String()+"|ADMIN", rec.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := testutil.GenerateJWTHS256(t, "other-secret", userID.String(), "ADMIN")
		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		token := testutil.GenerateJWTHS256(t, testSecret, "alice", "ADMIN")
		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": userID.String(), "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without expiry", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": userID.String(), "role": "ADMIN"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-hmac algorithm", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": userID.String(), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		rec := doRequest(e, http.MethodGet, APIPrefix+"/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMaintenanceGuard(t *testing.T) {
	token := testutil.GenerateJWTHS256(t, testSecret, kernel.NewUUID().String(), "ADMIN")

	t.Run("maintenance blocks mutations only", func(t *testing.T) {
		e := echoWithWhoAmI(newTestServer(stubSettings{current: settings.Settings{MaintenanceMode: true}}))

		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodGet, APIPrefix+"/whoami", token).Code)
		assert.Equal(t, http.StatusServiceUnavailable, doRequest(e, http.MethodPost, APIPrefix+"/whoami", token).Code)
	})

	t.Run("mutations pass when maintenance is off", func(t *testing.T) {
		e := echoWithWhoAmI(newTestServer(stubSettings{}))
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, APIPrefix+"/whoami", token).Code)
	})

	t.Run("unreadable settings do not block", func(t *testing.T) {
		e := echoWithWhoAmI(newTestServer(stubSettings{err: errors.New("redis down")}))
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, APIPrefix+"/whoami", token).Code)
	})
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"required", errs.NewValueIsRequiredError("x"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("x"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 0, 1, 100), http.StatusBadRequest},
		{"joined malformed", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), http.StatusBadRequest},
		{"forbidden", errs.NewForbiddenError("list orders", "SELLER"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "1"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("order", "1"), http.StatusConflict},
		{"already exists", errs.NewAlreadyExistsError("driver profile for user", "1"), http.StatusConflict},
		{"illegal transition", errs.NewIllegalTransitionError(order.Pending, order.Picked), http.StatusUnprocessableEntity},
		{"ineligible", errs.NewIneligibleDriverError("1", "not verified"), http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", "1")), http.StatusNotFound},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	s := newTestServer(stubSettings{})
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, s.fail(c, errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRequestValidator(t *testing.T) {
	v := newRequestValidator()

	err := v.Validate(&PlaceOrderRequest{})
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	online := false
	require.NoError(t, v.Validate(&HeartbeatRequest{Online: &online}))
	require.ErrorIs(t, v.Validate(&HeartbeatRequest{}), errs.ErrMalformedInput)

	err = v.Validate(&RegisterDriverRequest{UserID: kernel.NewUUID().Bytes(), Role: "SELLER"})
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestListOrdersParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=10&from=2026-10-01&to=2026-10-16&status=pending&search=asha", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p, err := bindListOrdersParams(c)

	require.NoError(t, err)
	assert.Equal(t, 2, p.page())
	assert.Equal(t, 10, p.limit())
	assert.Equal(t, "pending", stringOr(p.Status, ""))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *p.createdFrom())
	assert.Equal(t, time.Date(2026, 10, 16, 23, 59, 59, 999999999, time.UTC), *p.createdTo())

	t.Run("defaults", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		p, err := bindListOrdersParams(c)
		require.NoError(t, err)
		assert.Equal(t, 1, p.page())
		assert.Equal(t, defaultPageSize, p.limit())
		assert.Nil(t, p.createdFrom())
		assert.Nil(t, p.createdTo())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, qs := range []string{"page=two", "from=16-10-2026"} {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?"+qs, nil), httptest.NewRecorder())
			_, err := bindListOrdersParams(c)
			require.ErrorIs(t, err, errs.ErrMalformedInput, qs)
		}
	})
}

func TestPathUUID(t *testing.T) {
	e := echo.New()
	id := kernel.NewUUID()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	got, err := pathUUID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.SetParamValues("not-a-uuid")
	_, err = pathUUID(c, "id")
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestPrincipalFrom_Unauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", strings.NewReader("")), httptest.NewRecorder())

	p := principalFrom(c)

	assert.Equal(t, identity.Principal{}, p)
	assert.False(t, p.IsAuthenticated())
}

func TestRoutes_RoleCheckedBeforeInput(t *testing.T) {
	e := newTestServer(stubSettings{}).NewEcho()
	admin := testutil.GenerateJWTHS256(t, testSecret, kernel.NewUUID().String(), "ADMIN")
	customer := testutil.GenerateJWTHS256(t, testSecret, kernel.NewUUID().String(), "CUSTOMER")
	driver := testutil.GenerateJWTHS256(t, testSecret, kernel.NewUUID().String(), "DELIVERY_DRIVER")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"customer with bad paging", http.MethodGet, "/orders?limit=0&page=-1", customer, http.StatusForbidden},
		{"customer with bad sort", http.MethodGet, "/orders?sort=cheapest", customer, http.StatusForbidden},
		{"customer with bad order id", http.MethodPatch, "/orders/not-a-uuid/status", customer, http.StatusForbidden},
		{"driver assigning", http.MethodPatch, "/orders/not-a-uuid/driver", driver, http.StatusForbidden},
		{"driver listing candidates", http.MethodGet, "/drivers/available", driver, http.StatusForbidden},
		{"admin reporting presence", http.MethodPost, "/drivers/presence", admin, http.StatusForbidden},
		{"admin with bad paging", http.MethodGet, "/orders?limit=0", admin, http.StatusBadRequest},
		{"admin with bad order id", http.MethodPatch, "/orders/not-a-uuid/status", admin, http.StatusBadRequest},
		{"driver with empty presence body", http.MethodPost, "/drivers/presence", driver, http.StatusBadRequest},
		{"no token", http.MethodGet, "/orders?limit=0", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.method, APIPrefix+tt.path, tt.token)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
