package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/membership"
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/repository"
	"gorm.io/gorm"
)

// AssignInput has no end override: a purchased term always runs for its
// plan's length. Start is honoured only when an operator enters the term.
type AssignInput struct {
	PatronID      uint
	PlanType      models.PlanType
	PaymentMethod models.PaymentMethod
	Start         *time.Time
	Operator      *Operator
}

type EditInput struct {
	PatronID uint
	PlanType models.PlanType
	Start    *time.Time
	End      *time.Time
	// PaymentMethod is only used when no current term exists and a new one
	// has to be created. Defaults to cash.
	PaymentMethod models.PaymentMethod
	Operator      *Operator
}

type SubscriptionService interface {
	Assign(ctx context.Context, in AssignInput) (*models.Subscription, error)
	Edit(ctx context.Context, in EditInput) (*models.Subscription, error)
	Current(ctx context.Context, patronID uint) (*models.Subscription, error)
	ListExpiringSoon(ctx context.Context) ([]models.Subscription, error)
	MarkPaid(ctx context.Context, id uint) (*models.Subscription, error)
	StateOf(sub *models.Subscription) membership.State
}

type subscriptionService struct {
	tx          repository.Transactor
	subRepo     repository.SubscriptionRepository
	patronRepo  repository.PatronRepository
	settingRepo repository.SettingRepository
	publisher   EventPublisher
	loc         *time.Location
	now         func() time.Time
}

func NewSubscriptionService(
	tx repository.Transactor,
	subRepo repository.SubscriptionRepository,
	patronRepo repository.PatronRepository,
	settingRepo repository.SettingRepository,
	publisher EventPublisher,
	loc *time.Location,
) SubscriptionService {
	if loc == nil {
		loc = time.UTC
	}
	return &subscriptionService{
		tx:          tx,
		subRepo:     subRepo,
		patronRepo:  patronRepo,
		settingRepo: settingRepo,
		publisher:   publisher,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *subscriptionService) clock() time.Time {
	return s.now().In(s.loc)
}

// Assign records a purchased or staff-assigned term. It always creates a new
// row; the newest active row becomes the patron's current subscription.
func (s *subscriptionService) Assign(ctx context.Context, in AssignInput) (*models.Subscription, error) {
	if in.PlanType == "" {
		return nil, ErrPlanTypeRequired
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	start := in.Start
	if in.Operator == nil {
		start = nil
	}

	return s.write(ctx, in.PatronID, func(tx *gorm.DB, now time.Time) (*models.Subscription, error) {
		sub, err := s.newTerm(ctx, in.PatronID, in.PlanType, in.PaymentMethod, start, nil, in.Operator, now)
		if err != nil {
			return nil, err
		}
		if err := s.subRepo.Create(ctx, tx, sub); err != nil {
			return nil, fmt.Errorf("create subscription: %w", err)
		}
		return sub, nil
	})
}

// Edit overrides plan and dates of the current term in place, creating a term
// when the patron has none.
func (s *subscriptionService) Edit(ctx context.Context, in EditInput) (*models.Subscription, error) {
	if in.PlanType == "" {
		return nil, ErrPlanTypeRequired
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	return s.write(ctx, in.PatronID, func(tx *gorm.DB, now time.Time) (*models.Subscription, error) {
		current, err := s.subRepo.FindCurrent(ctx, tx, in.PatronID, now)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sub, err := s.newTerm(ctx, in.PatronID, in.PlanType, method, in.Start, in.End, in.Operator, now)
			if err != nil {
				return nil, err
			}
			if err := s.subRepo.Create(ctx, tx, sub); err != nil {
				return nil, fmt.Errorf("create subscription: %w", err)
			}
			return sub, nil
		}
		if err != nil {
			return nil, err
		}

		start := current.StartDate
		if in.Start != nil {
			start = *in.Start
		}
		end, err := membership.EndDate(in.PlanType, start, in.End)
		if err != nil {
			return nil, termError(err)
		}

		current.PlanType = in.PlanType
		current.StartDate = start
		current.EndDate = end
		if err := s.subRepo.Update(ctx, tx, current); err != nil {
			return nil, fmt.Errorf("update subscription: %w", err)
		}
		return current, nil
	})
}

func (s *subscriptionService) newTerm(
	ctx context.Context,
	patronID uint,
	plan models.PlanType,
	method models.PaymentMethod,
	startOverride, endOverride *time.Time,
	op *Operator,
	now time.Time,
) (*models.Subscription, error) {
	start := now
	if startOverride != nil {
		start = *startOverride
	}
	end, err := membership.EndDate(plan, start, endOverride)
	if err != nil {
		return nil, termError(err)
	}

	amount, err := loadPlanFee(ctx, s.settingRepo, plan)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		PatronID:      patronID,
		PlanType:      plan,
		StartDate:     start,
		EndDate:       end,
		PaymentMethod: method,
		PaymentStatus: models.PaymentPending,
		AmountPaid:    amount,
	}
	if op != nil {
		sub.PaymentStatus = models.PaymentPaid
		sub.ProcessedBy = &op.ID
	}
	return sub, nil
}

// write runs mutate with the patron row locked, then promotes the patron when
// the resulting term is active.
func (s *subscriptionService) write(
	ctx context.Context,
	patronID uint,
	mutate func(tx *gorm.DB, now time.Time) (*models.Subscription, error),
) (*models.Subscription, error) {
	var result *models.Subscription
	now := s.clock()

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		patron, err := s.patronRepo.FindByIDForUpdate(ctx, tx, patronID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatronNotFound
			}
			return err
		}
		if patron.Classification.IsStaffRole() {
			return ErrStaffNotPriced
		}

		sub, err := mutate(tx, now)
		if err != nil {
			return err
		}

		if membership.IsActive(sub, now) {
			membership.Promote(patron)
			if err := s.patronRepo.UpdateMembership(ctx, tx, patron); err != nil {
				return fmt.Errorf("update patron membership: %w", err)
			}
		}
		sub.Patron = patron
		result = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	if membership.IsActive(result, now) {
		publish(s.publisher, RoutingSubscriptionActivated, SubscriptionActivatedEvent{
			SubscriptionID: result.ID,
			PatronID:       result.PatronID,
			PlanType:       result.PlanType,
			StartDate:      result.StartDate,
			EndDate:        result.EndDate,
		})
	}
	return result, nil
}

func (s *subscriptionService) Current(ctx context.Context, patronID uint) (*models.Subscription, error) {
	if _, err := s.patronRepo.FindByID(ctx, patronID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatronNotFound
		}
		return nil, err
	}

	sub, err := s.subRepo.FindCurrent(ctx, s.subRepo.GetDB(), patronID, s.clock())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	return sub, err
}

// ListExpiringSoon returns finite terms ending between now and the close of
// the last day of the expiring window.
func (s *subscriptionService) ListExpiringSoon(ctx context.Context) ([]models.Subscription, error) {
	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	until := today.AddDate(0, 0, membership.ExpiringWindowDays+1)

	subs, err := s.subRepo.FindEndingBetween(ctx, now, until)
	if err != nil {
		return nil, err
	}

	out := make([]models.Subscription, 0, len(subs))
	for i := range subs {
		if membership.IsExpiringSoon(&subs[i], now) {
			out = append(out, subs[i])
		}
	}
	return out, nil
}

func (s *subscriptionService) MarkPaid(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if sub.PaymentStatus == models.PaymentPaid {
		return sub, ErrAlreadyPaid
	}
	updated, err := s.subRepo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	if !updated {
		return sub, ErrAlreadyPaid
	}
	sub.PaymentStatus = models.PaymentPaid
	return sub, nil
}

func (s *subscriptionService) StateOf(sub *models.Subscription) membership.State {
	return membership.StateAt(sub, s.clock())
}

func termError(err error) error {
	switch {
	case errors.Is(err, membership.ErrInvalidPlan):
		return invalidField("plan_type", err)
	case errors.Is(err, membership.ErrEndBeforeStart):
		return invalidField("end_date", err)
	}
	return err
}
