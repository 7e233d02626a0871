package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/dto"
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/pricing"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func do(e *echo.Echo, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleBooking() *models.Booking {
	patronID := uint(7)
	return &models.Booking{
		ID:               1,
		PatronID:         &patronID,
		Slot:             models.SlotNight,
		Date:             datatypes.Date(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		Games:            2,
		Category:         models.CategoryDouble,
		WithTrainer:      true,
		Priests:          1,
		PickerSelections: datatypes.JSONSlice[bool]{true, false},
		PaymentMethod:    models.PaymentGCash,
		PaymentStatus:    models.PaymentPending,
		Subtotal:         decimal.NewFromInt(310),
		DiscountApplied:  decimal.Zero,
		Total:            decimal.NewFromInt(310),
		Reference:        "AB12CD34",
		CreatedAt:        time.Now(),
	}
}

func TestPreview_Handler_Success(t *testing.T) {
	var got service.QuoteInput
	svc := &mockBookingService{
		previewFn: func(ctx context.Context, in service.QuoteInput) (pricing.Quote, error) {
			got = in
			return pricing.Quote{Subtotal: decimal.NewFromInt(310), Total: decimal.NewFromInt(310)}, nil
		},
	}
	e := newServer(svc, nil)

	body := `{"patron_id":7,"slot":"night","games":2,"category":"double","with_trainer":true,"priests":1,"picker_selections":[true,false]}`
	rec := do(e, http.MethodPost, "/api/v1/bookings/preview", body, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, decimal.NewFromInt(310).Equal(resp.Total))
	assert.Equal(t, "PHP", resp.Currency)

	require.NotNil(t, got.PatronID)
	assert.Equal(t, uint(7), *got.PatronID)
	assert.Equal(t, models.SlotNight, got.Slot)
	assert.Equal(t, models.CategoryDouble, got.Category)
	assert.Equal(t, 1, got.Priests)
	assert.Equal(t, []bool{true, false}, got.PickerSelections)
}

func TestPreview_Handler_RejectsOutOfRangeGames(t *testing.T) {
	svc := &mockBookingService{
		previewFn: func(ctx context.Context, in service.QuoteInput) (pricing.Quote, error) {
			t.Fatal("service must not be called")
			return pricing.Quote{}, nil
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodPost, "/api/v1/bookings/preview", `{"slot":"day","games":5,"category":"single"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview_Handler_ServiceValidationError(t *testing.T) {
	svc := &mockBookingService{
		previewFn: func(ctx context.Context, in service.QuoteInput) (pricing.Quote, error) {
			return pricing.Quote{}, service.ErrStaffNotPriced
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodPost, "/api/v1/bookings/preview", `{"patron_id":3,"slot":"day","games":1,"category":"single"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "staff")
}

func TestCreateBooking_Handler_SelfService(t *testing.T) {
	var got service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			got = in
			return sampleBooking(), nil
		},
	}
	e := newServer(svc, nil)

	body := `{"patron_id":7,"slot":"night","games":2,"category":"double","with_trainer":true,"priests":1,"picker_selections":[true,false],"date":"2025-01-20","payment_method":"gcash"}`
	rec := do(e, http.MethodPost, "/api/v1/bookings", body, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AB12CD34", resp.Reference)
	assert.Equal(t, "2025-01-20", resp.Date)
	assert.Equal(t, models.PaymentPending, resp.PaymentStatus)

	assert.Nil(t, got.Operator)
	assert.Equal(t, models.PaymentGCash, got.PaymentMethod)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestCreateBooking_Handler_StaffOperator(t *testing.T) {
	var got service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			got = in
			return sampleBooking(), nil
		},
	}
	e := newServer(svc, nil)

	body := `{"patron_id":7,"slot":"day","games":1,"category":"single","date":"2025-01-20","payment_method":"cash"}`
	rec := do(e, http.MethodPost, "/api/v1/bookings", body, staffToken(t, 42))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, got.Operator)
	assert.Equal(t, uint(42), got.Operator.ID)
}

func TestCreateBooking_Handler_BadDate(t *testing.T) {
	svc := &mockBookingService{}
	e := newServer(svc, nil)

	body := `{"slot":"day","games":1,"category":"single","date":"20-01-2025","payment_method":"cash"}`
	rec := do(e, http.MethodPost, "/api/v1/bookings", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_Handler_InvalidToken(t *testing.T) {
	svc := &mockBookingService{}
	e := newServer(svc, nil)

	body := `{"slot":"day","games":1,"category":"single","date":"2025-01-20","payment_method":"cash"}`
	rec := do(e, http.MethodPost, "/api/v1/bookings", body, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBooking_Handler_ReferenceExhausted(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			return nil, service.ErrReferenceExhausted
		},
	}
	e := newServer(svc, nil)

	body := `{"slot":"day","games":1,"category":"single","date":"2025-01-20","payment_method":"cash"}`
	rec := do(e, http.MethodPost, "/api/v1/bookings", body, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetBooking_Handler(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			if id == 1 {
				return sampleBooking(), nil
			}
			return nil, service.ErrBookingNotFound
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodGet, "/api/v1/bookings/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/bookings/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/bookings/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookingByReference_Handler(t *testing.T) {
	svc := &mockBookingService{
		getByRefFn: func(ctx context.Context, ref string) (*models.Booking, error) {
			assert.Equal(t, "AB12CD34", ref)
			return sampleBooking(), nil
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodGet, "/api/v1/bookings/reference/AB12CD34", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
}

func TestMarkBookingPaid_Handler_RequiresStaff(t *testing.T) {
	svc := &mockBookingService{
		markPaidFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			b := sampleBooking()
			b.PaymentStatus = models.PaymentPaid
			return b, nil
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodPatch, "/api/v1/bookings/1/paid", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPatch, "/api/v1/bookings/1/paid", "", staffToken(t, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.PaymentPaid, resp.PaymentStatus)
}

func TestMarkBookingPaid_Handler_AlreadyPaid(t *testing.T) {
	svc := &mockBookingService{
		markPaidFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return sampleBooking(), service.ErrAlreadyPaid
		},
	}
	e := newServer(svc, nil)

	rec := do(e, http.MethodPatch, "/api/v1/bookings/1/paid", "", staffToken(t, 42))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHTTPError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{&pricing.ValidationError{Field: "games", Message: "bad"}, http.StatusBadRequest},
		{service.ErrPatronNotFound, http.StatusNotFound},
		{service.ErrSubscriptionNotFound, http.StatusNotFound},
		{service.ErrAlreadyPaid, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var he *echo.HTTPError
		require.True(t, errors.As(httpError(tc.err), &he))
		assert.Equal(t, tc.code, he.Code, tc.err.Error())
	}
}
