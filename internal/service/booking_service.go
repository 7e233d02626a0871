package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/pricing"
	"github.com/Eursukkul/sports-club-service/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Operator identifies the staff member entering a request at the counter.
type Operator struct {
	ID uint
}

type QuoteInput struct {
	PatronID         *uint
	Slot             models.Slot
	Games            int
	Category         models.Category
	WithTrainer      bool
	Priests          int
	PickerSelections []bool
}

type CreateBookingInput struct {
	QuoteInput
	Date          time.Time
	PaymentMethod models.PaymentMethod
	Operator      *Operator
}

type BookingService interface {
	Preview(ctx context.Context, in QuoteInput) (pricing.Quote, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)
	MarkPaid(ctx context.Context, id uint) (*models.Booking, error)
	MarkPaidByReference(ctx context.Context, ref string) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	patronRepo  repository.PatronRepository
	settingRepo repository.SettingRepository
	publisher   EventPublisher
	newRef      func() (string, error)
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	patronRepo repository.PatronRepository,
	settingRepo repository.SettingRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		patronRepo:  patronRepo,
		settingRepo: settingRepo,
		publisher:   publisher,
		newRef:      NewReference,
	}
}

// Preview prices a booking without storing anything. CreateBooking goes
// through the same quote path, so both report the same total.
func (s *bookingService) Preview(ctx context.Context, in QuoteInput) (pricing.Quote, error) {
	q, _, err := s.quote(ctx, in)
	return q, err
}

func (s *bookingService) quote(ctx context.Context, in QuoteInput) (pricing.Quote, *models.Patron, error) {
	class := models.ClassNonMember
	var patron *models.Patron
	if in.PatronID != nil {
		p, err := s.patronRepo.FindByID(ctx, *in.PatronID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pricing.Quote{}, nil, ErrPatronNotFound
			}
			return pricing.Quote{}, nil, err
		}
		if p.Classification.IsStaffRole() {
			return pricing.Quote{}, nil, ErrStaffNotPriced
		}
		class = p.Classification
		patron = p
	}

	fees, err := loadBookingFees(ctx, s.settingRepo)
	if err != nil {
		return pricing.Quote{}, nil, err
	}

	q, err := pricing.Price(pricing.Input{
		Classification:   class,
		Slot:             in.Slot,
		Games:            in.Games,
		Category:         in.Category,
		WithTrainer:      in.WithTrainer,
		Priests:          in.Priests,
		PickerSelections: in.PickerSelections,
	}, fees)
	return q, patron, err
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if in.Date.IsZero() {
		return nil, ErrBookingDateRequired
	}

	q, patron, err := s.quote(ctx, in.QuoteInput)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PatronID:         in.PatronID,
		Slot:             in.Slot,
		Date:             datatypes.Date(in.Date),
		Games:            in.Games,
		Category:         in.Category,
		WithTrainer:      in.WithTrainer,
		Priests:          in.Priests,
		PickerSelections: datatypes.JSONSlice[bool](truncateSelections(in.PickerSelections, in.Games)),
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    models.PaymentPending,
		Subtotal:         q.Subtotal,
		DiscountApplied:  q.DiscountApplied,
		Total:            q.Total,
	}
	// Staff collect cash or gcash at the counter when entering a booking for
	// a patron. Guest bookings always wait for verification.
	if in.Operator != nil && patron != nil {
		booking.PaymentStatus = models.PaymentPaid
		booking.ProcessedBy = &in.Operator.ID
	}

	if err := s.insertWithReference(ctx, booking); err != nil {
		return nil, err
	}

	publish(s.publisher, RoutingBookingCreated, BookingCreatedEvent{
		BookingID:     booking.ID,
		PatronID:      booking.PatronID,
		Reference:     booking.Reference,
		Total:         booking.Total,
		PaymentMethod: booking.PaymentMethod,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
	})
	return booking, nil
}

// insertWithReference allocates a payment reference and inserts the booking,
// drawing a fresh reference whenever the candidate is already taken.
func (s *bookingService) insertWithReference(ctx context.Context, booking *models.Booking) error {
	for attempt := 1; attempt <= MaxReferenceAttempts; attempt++ {
		err := s.tryInsert(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrReferenceConflict) {
			return err
		}
		log.Printf("[BookingService] reference %s taken (attempt %d/%d)", booking.Reference, attempt, MaxReferenceAttempts)
	}
	return ErrReferenceExhausted
}

func (s *bookingService) tryInsert(ctx context.Context, booking *models.Booking) error {
	ref, err := s.newRef()
	if err != nil {
		return fmt.Errorf("generate reference: %w", err)
	}
	booking.Reference = ref

	exists, err := s.bookingRepo.ReferenceExists(ctx, ref)
	if err != nil {
		return fmt.Errorf("check reference: %w", err)
	}
	if exists {
		return ErrReferenceConflict
	}

	// A concurrent insert can still claim the same reference; the unique
	// index reports it as a duplicated key.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReferenceConflict
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

func (s *bookingService) GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error) {
	b, err := s.bookingRepo.FindByReference(ctx, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// MarkPaid records a verified payment. Marking an already paid booking
// returns ErrAlreadyPaid.
func (s *bookingService) MarkPaid(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, b)
}

func (s *bookingService) MarkPaidByReference(ctx context.Context, ref string) (*models.Booking, error) {
	b, err := s.GetBookingByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, b)
}

func (s *bookingService) markPaid(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if b.PaymentStatus == models.PaymentPaid {
		return b, ErrAlreadyPaid
	}
	updated, err := s.bookingRepo.MarkPaid(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return b, ErrAlreadyPaid
	}
	b.PaymentStatus = models.PaymentPaid
	return b, nil
}

func truncateSelections(selections []bool, games int) []bool {
	out := make([]bool, games)
	copy(out, selections)
	return out
}
