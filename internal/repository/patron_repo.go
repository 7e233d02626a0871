package repository

import (
	"context"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PatronRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Patron, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Patron, error)
	UpdateMembership(ctx context.Context, tx *gorm.DB, patron *models.Patron) error
}

type patronRepository struct {
	db *gorm.DB
}

func NewPatronRepository(db *gorm.DB) PatronRepository {
	return &patronRepository{db: db}
}

func (r *patronRepository) FindByID(ctx context.Context, id uint) (*models.Patron, error) {
	var patron models.Patron
	if err := r.db.WithContext(ctx).First(&patron, id).Error; err != nil {
		return nil, err
	}
	return &patron, nil
}

// FindByIDForUpdate locks the patron row for the rest of tx. Subscription
// writes for one patron are serialized on this lock.
func (r *patronRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Patron, error) {
	var patron models.Patron
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&patron, id).Error; err != nil {
		return nil, err
	}
	return &patron, nil
}

func (r *patronRepository) UpdateMembership(ctx context.Context, tx *gorm.DB, patron *models.Patron) error {
	return tx.WithContext(ctx).
		Model(&models.Patron{}).
		Where("id = ?", patron.ID).
		Updates(map[string]any{
			"classification":    patron.Classification,
			"membership_status": patron.MembershipStatus,
		}).Error
}
