package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/dto"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto HTTP statuses. Validation messages are
// passed through verbatim.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPatronNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, s, loc)
}

func parseOptionalDate(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}
