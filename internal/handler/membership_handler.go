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

type MembershipHandler struct {
	svc service.SubscriptionService
	loc *time.Location
}

func NewMembershipHandler(svc service.SubscriptionService, loc *time.Location) *MembershipHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &MembershipHandler{svc: svc, loc: loc}
}

func (h *MembershipHandler) RegisterRoutes(g *echo.Group) {
	patrons := g.Group("/patrons/:id/membership")
	patrons.POST("", h.Assign)
	patrons.PUT("", h.Edit, middleware.RequireStaff)
	patrons.GET("", h.Current)

	memberships := g.Group("/memberships")
	memberships.GET("/expiring", h.ListExpiring, middleware.RequireStaff)
	memberships.PATCH("/:id/paid", h.MarkPaid, middleware.RequireStaff)
}

func (h *MembershipHandler) respond(c echo.Context, code int, sub *models.Subscription) error {
	return c.JSON(code, dto.ToSubscriptionResponse(sub, h.svc.StateOf(sub)))
}

func (h *MembershipHandler) Assign(c echo.Context) error {
	patronID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patron id")
	}

	var req dto.AssignMembershipRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	op := middleware.OperatorFrom(c)
	if op == nil && req.StartDate != nil && *req.StartDate != "" {
		return echo.NewHTTPError(http.StatusForbidden, "start_date can only be set by staff")
	}
	start, _, err := h.dates(req.StartDate, nil)
	if err != nil {
		return err
	}

	sub, err := h.svc.Assign(c.Request().Context(), service.AssignInput{
		PatronID:      uint(patronID),
		PlanType:      models.PlanType(req.PlanType),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Start:         start,
		Operator:      op,
	})
	if err != nil {
		return httpError(err)
	}

	return h.respond(c, http.StatusCreated, sub)
}

func (h *MembershipHandler) Edit(c echo.Context) error {
	patronID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patron id")
	}

	var req dto.EditMembershipRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	start, end, err := h.dates(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	sub, err := h.svc.Edit(c.Request().Context(), service.EditInput{
		PatronID:      uint(patronID),
		PlanType:      models.PlanType(req.PlanType),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Start:         start,
		End:           end,
		Operator:      middleware.OperatorFrom(c),
	})
	if err != nil {
		return httpError(err)
	}

	return h.respond(c, http.StatusOK, sub)
}

func (h *MembershipHandler) Current(c echo.Context) error {
	patronID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patron id")
	}

	sub, err := h.svc.Current(c.Request().Context(), uint(patronID))
	if err != nil {
		return httpError(err)
	}

	return h.respond(c, http.StatusOK, sub)
}

func (h *MembershipHandler) ListExpiring(c echo.Context) error {
	subs, err := h.svc.ListExpiringSoon(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.SubscriptionResponse, len(subs))
	for i := range subs {
		resp[i] = dto.ToSubscriptionResponse(&subs[i], h.svc.StateOf(&subs[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *MembershipHandler) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id")
	}

	sub, err := h.svc.MarkPaid(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}

	return h.respond(c, http.StatusOK, sub)
}

func (h *MembershipHandler) dates(start, end *string) (*time.Time, *time.Time, error) {
	s, err := parseOptionalDate(start, h.loc)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	e, err := parseOptionalDate(end, h.loc)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	return s, e, nil
}
