package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Eursukkul/sports-club-service/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	KindBooking      = "booking"
	KindSubscription = "subscription"
)

// PaymentVerified is sent by the payment gateway once a cash or gcash payment
// has been confirmed.
type PaymentVerified struct {
	Kind           string `json:"kind"`
	Reference      string `json:"reference,omitempty"`
	SubscriptionID uint   `json:"subscription_id,omitempty"`
}

type PaymentConsumer struct {
	bookings      service.BookingService
	subscriptions service.SubscriptionService
}

func NewPaymentConsumer(bookings service.BookingService, subscriptions service.SubscriptionService) *PaymentConsumer {
	return &PaymentConsumer{bookings: bookings, subscriptions: subscriptions}
}

// Start marks bookings and subscriptions paid as verification messages arrive.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var ev PaymentVerified
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	err := pc.apply(context.Background(), ev)
	switch {
	case err == nil:
		log.Printf("[PaymentConsumer] marked %s paid: %+v", ev.Kind, ev)
	case errors.Is(err, service.ErrAlreadyPaid):
		log.Printf("[PaymentConsumer] %s already paid: %+v", ev.Kind, ev)
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound),
		errors.Is(err, errUnknownKind):
		log.Printf("[PaymentConsumer] dropping message: %v", err)
		msg.Nack(false, false)
		return
	default:
		log.Printf("[PaymentConsumer] failed to apply %+v: %v", ev, err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}

var errUnknownKind = errors.New("unknown payment kind")

func (pc *PaymentConsumer) apply(ctx context.Context, ev PaymentVerified) error {
	switch ev.Kind {
	case KindBooking:
		_, err := pc.bookings.MarkPaidByReference(ctx, ev.Reference)
		return err
	case KindSubscription:
		_, err := pc.subscriptions.MarkPaid(ctx, ev.SubscriptionID)
		return err
	default:
		return errUnknownKind
	}
}
