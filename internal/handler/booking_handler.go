package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/dto"
	"github.com/Eursukkul/sports-club-service/internal/middleware"
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/labstack/echo/v4"
)

const currency = "PHP"

type BookingHandler struct {
	svc service.BookingService
	loc *time.Location
}

func NewBookingHandler(svc service.BookingService, loc *time.Location) *BookingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{svc: svc, loc: loc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	bookings := g.Group("/bookings")
	bookings.POST("/preview", h.Preview, limiter)
	bookings.POST("", h.CreateBooking, limiter)
	bookings.GET("/:id", h.GetBooking)
	bookings.GET("/reference/:ref", h.GetBookingByReference)
	bookings.PATCH("/:id/paid", h.MarkPaid, middleware.RequireStaff)
}

func toQuoteInput(req dto.QuoteRequest) service.QuoteInput {
	return service.QuoteInput{
		PatronID:         req.PatronID,
		Slot:             models.Slot(req.Slot),
		Games:            req.Games,
		Category:         models.Category(req.Category),
		WithTrainer:      req.WithTrainer,
		Priests:          req.Priests,
		PickerSelections: req.PickerSelections,
	}
}

// Preview renders the cost breakdown shown before the patron confirms.
func (h *BookingHandler) Preview(c echo.Context) error {
	var req dto.QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.svc.Preview(c.Request().Context(), toQuoteInput(req))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.QuoteResponse{Quote: q, Currency: currency})
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		QuoteInput:    toQuoteInput(req.QuoteRequest),
		Date:          date,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Operator:      middleware.OperatorFrom(c),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBookingByReference(c echo.Context) error {
	booking, err := h.svc.GetBookingByReference(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.MarkPaid(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
