package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const operatorKey = "operator"

// Identity inspects an optional staff bearer token. Requests without one are
// treated as self-service. A token that fails verification is rejected;
// a valid token for a non-staff role is ignored.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" || secret == "" {
				return next(c)
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			role, _ := claims["role"].(string)
			if !models.Classification(role).IsStaffRole() {
				return next(c)
			}
			id, ok := subjectID(claims["sub"])
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(operatorKey, &service.Operator{ID: id})
			return next(c)
		}
	}
}

// RequireStaff rejects requests that did not present a staff token.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if OperatorFrom(c) == nil {
			return echo.NewHTTPError(http.StatusForbidden, "staff only")
		}
		return next(c)
	}
}

// OperatorFrom returns the staff operator set by Identity, or nil.
func OperatorFrom(c echo.Context) *service.Operator {
	op, _ := c.Get(operatorKey).(*service.Operator)
	return op
}

func subjectID(v any) (uint, bool) {
	switch s := v.(type) {
	case float64:
		if s <= 0 {
			return 0, false
		}
		return uint(s), true
	case string:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}
