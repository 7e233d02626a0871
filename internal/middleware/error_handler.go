package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/Eursukkul/sports-club-service/internal/dto"
	"github.com/labstack/echo/v4"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s request_id=%s: %v",
			c.Request().Method, c.Request().URL.Path,
			c.Response().Header().Get(echo.HeaderXRequestID), err)
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
