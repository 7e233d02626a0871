package handler

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/membership"
	"github.com/Eursukkul/sports-club-service/internal/middleware"
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/pricing"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// --- Mock BookingService ---

type mockBookingService struct {
	previewFn  func(ctx context.Context, in service.QuoteInput) (pricing.Quote, error)
	createFn   func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	getFn      func(ctx context.Context, id uint) (*models.Booking, error)
	getByRefFn func(ctx context.Context, ref string) (*models.Booking, error)
	markPaidFn func(ctx context.Context, id uint) (*models.Booking, error)
}

func (m *mockBookingService) Preview(ctx context.Context, in service.QuoteInput) (pricing.Quote, error) {
	return m.previewFn(ctx, in)
}
func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return m.getByRefFn(ctx, ref)
}
func (m *mockBookingService) MarkPaid(ctx context.Context, id uint) (*models.Booking, error) {
	return m.markPaidFn(ctx, id)
}
func (m *mockBookingService) MarkPaidByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return nil, service.ErrBookingNotFound
}

// --- Mock SubscriptionService ---

type mockSubscriptionService struct {
	assignFn   func(ctx context.Context, in service.AssignInput) (*models.Subscription, error)
	editFn     func(ctx context.Context, in service.EditInput) (*models.Subscription, error)
	currentFn  func(ctx context.Context, patronID uint) (*models.Subscription, error)
	expiringFn func(ctx context.Context) ([]models.Subscription, error)
	markPaidFn func(ctx context.Context, id uint) (*models.Subscription, error)
	now        time.Time
}

func (m *mockSubscriptionService) Assign(ctx context.Context, in service.AssignInput) (*models.Subscription, error) {
	return m.assignFn(ctx, in)
}
func (m *mockSubscriptionService) Edit(ctx context.Context, in service.EditInput) (*models.Subscription, error) {
	return m.editFn(ctx, in)
}
func (m *mockSubscriptionService) Current(ctx context.Context, patronID uint) (*models.Subscription, error) {
	return m.currentFn(ctx, patronID)
}
func (m *mockSubscriptionService) ListExpiringSoon(ctx context.Context) ([]models.Subscription, error) {
	return m.expiringFn(ctx)
}
func (m *mockSubscriptionService) MarkPaid(ctx context.Context, id uint) (*models.Subscription, error) {
	return m.markPaidFn(ctx, id)
}
func (m *mockSubscriptionService) StateOf(sub *models.Subscription) membership.State {
	return membership.StateAt(sub, m.now)
}

// --- Helpers ---

// newServer wires the handlers the same way main does, minus rate limiting.
func newServer(bookings service.BookingService, subs service.SubscriptionService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(middleware.Identity(testSecret))

	api := e.Group("/api/v1")
	noLimit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if bookings != nil {
		NewBookingHandler(bookings, time.UTC).RegisterRoutes(api, noLimit)
	}
	if subs != nil {
		NewMembershipHandler(subs, time.UTC).RegisterRoutes(api)
	}
	return e
}

func staffToken(t *testing.T, id uint) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(id), 10),
		"role": string(models.ClassStaff),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}
