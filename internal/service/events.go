package service

import (
	"log"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/shopspring/decimal"
)

const (
	RoutingBookingCreated        = "booking.created"
	RoutingSubscriptionActivated = "subscription.activated"
)

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type BookingCreatedEvent struct {
	BookingID     uint                 `json:"booking_id"`
	PatronID      *uint                `json:"patron_id,omitempty"`
	Reference     string               `json:"reference"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type SubscriptionActivatedEvent struct {
	SubscriptionID uint            `json:"subscription_id"`
	PatronID       uint            `json:"patron_id"`
	PlanType       models.PlanType `json:"plan_type"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
}

// publish is best effort: the row is already committed when it runs.
func publish(p EventPublisher, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(key, payload); err != nil {
		log.Printf("[Publisher] %s not delivered: %v", key, err)
	}
}
