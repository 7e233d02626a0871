package dto

import (
	"time"

	"github.com/Eursukkul/sports-club-service/internal/membership"
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/pricing"
	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	pricing.Quote
	Currency string `json:"currency"`
}

type BookingResponse struct {
	ID               uint                 `json:"id"`
	PatronID         *uint                `json:"patron_id,omitempty"`
	Slot             models.Slot          `json:"slot"`
	Date             string               `json:"date"`
	Games            int                  `json:"games"`
	Category         models.Category      `json:"category"`
	WithTrainer      bool                 `json:"with_trainer"`
	Priests          int                  `json:"priests"`
	PickerSelections []bool               `json:"picker_selections"`
	PaymentMethod    models.PaymentMethod `json:"payment_method"`
	PaymentStatus    models.PaymentStatus `json:"payment_status"`
	Subtotal         decimal.Decimal      `json:"subtotal"`
	DiscountApplied  decimal.Decimal      `json:"discount_applied"`
	Total            decimal.Decimal      `json:"total"`
	Reference        string               `json:"reference"`
	ProcessedBy      *uint                `json:"processed_by,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

type PatronMembership struct {
	ID               uint                    `json:"id"`
	Classification   models.Classification   `json:"classification"`
	MembershipStatus models.MembershipStatus `json:"membership_status"`
}

type SubscriptionResponse struct {
	ID            uint                 `json:"id"`
	PatronID      uint                 `json:"patron_id"`
	PlanType      models.PlanType      `json:"plan_type"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       *time.Time           `json:"end_date"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	AmountPaid    decimal.Decimal      `json:"amount_paid"`
	ProcessedBy   *uint                `json:"processed_by,omitempty"`
	State         membership.State     `json:"state"`
	Patron        *PatronMembership    `json:"patron,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		PatronID:         b.PatronID,
		Slot:             b.Slot,
		Date:             time.Time(b.Date).Format(DateLayout),
		Games:            b.Games,
		Category:         b.Category,
		WithTrainer:      b.WithTrainer,
		Priests:          b.Priests,
		PickerSelections: []bool(b.PickerSelections),
		PaymentMethod:    b.PaymentMethod,
		PaymentStatus:    b.PaymentStatus,
		Subtotal:         b.Subtotal,
		DiscountApplied:  b.DiscountApplied,
		Total:            b.Total,
		Reference:        b.Reference,
		ProcessedBy:      b.ProcessedBy,
		CreatedAt:        b.CreatedAt,
	}
}

func ToSubscriptionResponse(s *models.Subscription, state membership.State) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:            s.ID,
		PatronID:      s.PatronID,
		PlanType:      s.PlanType,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		PaymentMethod: s.PaymentMethod,
		PaymentStatus: s.PaymentStatus,
		AmountPaid:    s.AmountPaid,
		ProcessedBy:   s.ProcessedBy,
		State:         state,
		CreatedAt:     s.CreatedAt,
	}
	if s.Patron != nil {
		resp.Patron = &PatronMembership{
			ID:               s.Patron.ID,
			Classification:   s.Patron.Classification,
			MembershipStatus: s.Patron.MembershipStatus,
		}
	}
	return resp
}
