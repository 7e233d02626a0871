package service

import (
	"context"
	"sync"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock Transactor ---

type mockTx struct{}

func (mockTx) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock PatronRepository ---

type mockPatronRepo struct {
	patrons map[uint]*models.Patron
	updated []models.Patron
}

func newMockPatronRepo(patrons ...*models.Patron) *mockPatronRepo {
	m := &mockPatronRepo{patrons: map[uint]*models.Patron{}}
	for _, p := range patrons {
		m.patrons[p.ID] = p
	}
	return m
}

func (m *mockPatronRepo) FindByID(ctx context.Context, id uint) (*models.Patron, error) {
	p, ok := m.patrons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}
func (m *mockPatronRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Patron, error) {
	return m.FindByID(ctx, id)
}
func (m *mockPatronRepo) UpdateMembership(ctx context.Context, tx *gorm.DB, patron *models.Patron) error {
	m.updated = append(m.updated, *patron)
	m.patrons[patron.ID] = patron
	return nil
}

// --- Mock SettingRepository ---

type mockSettingRepo struct {
	values map[string]string
	calls  int
	err    error
}

func (m *mockSettingRepo) GetValues(ctx context.Context, keys ...string) (map[string]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func defaultSettings() *mockSettingRepo {
	return &mockSettingRepo{values: map[string]string{
		models.SettingFeeTrainer:            "50",
		models.SettingFeePicker:             "80",
		models.SettingFeeMembershipMonthly:  "500",
		models.SettingFeeMembershipAnnual:   "5000",
		models.SettingFeeMembershipLifetime: "20000",
	}}
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn   func(ctx context.Context, b *models.Booking) error
	existsFn   func(ctx context.Context, ref string) (bool, error)
	findFn     func(ctx context.Context, id uint) (*models.Booking, error)
	findRefFn  func(ctx context.Context, ref string) (*models.Booking, error)
	markPaidFn func(ctx context.Context, id uint) (bool, error)
	created    []*models.Booking
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, b); err != nil {
			return err
		}
	}
	b.ID = uint(len(m.created) + 1)
	m.created = append(m.created, b)
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) FindByReference(ctx context.Context, ref string) (*models.Booking, error) {
	if m.findRefFn != nil {
		return m.findRefFn(ctx, ref)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) ReferenceExists(ctx context.Context, ref string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, ref)
	}
	return false, nil
}
func (m *mockBookingRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, id)
	}
	return true, nil
}

// --- Mock SubscriptionRepository ---

type mockSubRepo struct {
	subs    []*models.Subscription
	updates int
}

func (m *mockSubRepo) Create(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	sub.ID = uint(len(m.subs) + 1)
	sub.CreatedAt = time.Now()
	m.subs = append(m.subs, sub)
	return nil
}
func (m *mockSubRepo) Update(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	m.updates++
	return nil
}
func (m *mockSubRepo) FindByID(ctx context.Context, id uint) (*models.Subscription, error) {
	for _, s := range m.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSubRepo) FindCurrent(ctx context.Context, tx *gorm.DB, patronID uint, now time.Time) (*models.Subscription, error) {
	for i := len(m.subs) - 1; i >= 0; i-- {
		s := m.subs[i]
		if s.PatronID == patronID && (s.EndDate == nil || s.EndDate.After(now)) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSubRepo) FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range m.subs {
		if s.EndDate != nil && s.EndDate.After(from) && s.EndDate.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}
func (m *mockSubRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	s, err := m.FindByID(ctx, id)
	if err != nil || s.PaymentStatus == models.PaymentPaid {
		return false, nil
	}
	s.PaymentStatus = models.PaymentPaid
	return true, nil
}
func (m *mockSubRepo) GetDB() *gorm.DB { return nil }

// --- Mock EventPublisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, published{key: routingKey, payload: payload})
	return nil
}

func uintPtr(v uint) *uint { return &v }
