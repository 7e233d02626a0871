package repository

import (
	"context"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"gorm.io/gorm"
)

// SettingRepository reads fee settings. Values are never cached here because
// staff can change them at any time.
type SettingRepository interface {
	GetValues(ctx context.Context, keys ...string) (map[string]string, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetValues(ctx context.Context, keys ...string) (map[string]string, error) {
	var rows []models.Setting
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
