package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidClaims = errors.New("invalid token claims")
)

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware verifies the HS256 bearer token and stores the resulting
// identity.Principal on the echo context. Role checks are left to the handlers.
func NewAuthMiddleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization), key)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Unauthorized",
				})
			}
			c.Set(principalContextKey, p)
			return next(c)
		}
	}
}

func parseBearer(header string, key []byte) (identity.Principal, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return identity.Principal{}, errMissingToken
	}
	if len(key) == 0 {
		return identity.Principal{}, errors.New("jwt secret is empty")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return identity.Principal{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return identity.Principal{}, errInvalidClaims
	}
	p, err := identity.NewPrincipal(userID, identity.ParseRole(claims.Role))
	if err != nil {
		return identity.Principal{}, errInvalidClaims
	}
	return p, nil
}

// principalFrom returns the caller set by the auth middleware. Routes outside the
// middleware get the zero Principal, which every Require* guard rejects.
func principalFrom(c echo.Context) identity.Principal {
	p, _ := c.Get(principalContextKey).(identity.Principal)
	return p
}

// requireRole rejects callers without one of roles before the route parses any
// input, so an unauthorized caller always sees Forbidden. The use case repeats the
// check on its own.
func (s *Server) requireRole(action string, roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := identity.RequireRole(principalFrom(c), action, roles...); err != nil {
				return s.fail(c, err)
			}
			return next(c)
		}
	}
}
