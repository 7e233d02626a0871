package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error
	Update(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error
	FindByID(ctx context.Context, id uint) (*models.Subscription, error)
	FindCurrent(ctx context.Context, tx *gorm.DB, patronID uint, now time.Time) (*models.Subscription, error)
	FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)
	MarkPaid(ctx context.Context, id uint) (bool, error)
	GetDB() *gorm.DB
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *subscriptionRepository) Create(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	return tx.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) Update(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	return tx.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]any{
			"plan_type":  sub.PlanType,
			"start_date": sub.StartDate,
			"end_date":   sub.EndDate,
		}).Error
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindCurrent returns the most recently created term that is lifetime or ends
// after now.
func (r *subscriptionRepository) FindCurrent(ctx context.Context, tx *gorm.DB, patronID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := tx.WithContext(ctx).
		Where("patron_id = ? AND (end_date IS NULL OR end_date > ?)", patronID, now).
		Order("created_at DESC, id DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindEndingBetween lists finite terms whose end date falls in (from, to).
func (r *subscriptionRepository) FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Patron").
		Where("end_date > ? AND end_date < ?", from, to).
		Order("end_date ASC, id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) MarkPaid(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Update("payment_status", models.PaymentPaid)
	return res.RowsAffected > 0, res.Error
}
