package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/Eursukkul/sports-club-service/internal/pricing"
	"github.com/Eursukkul/sports-club-service/internal/repository"
	"github.com/shopspring/decimal"
)

// loadAmounts reads the given setting keys as money amounts. Missing keys
// count as zero.
func loadAmounts(ctx context.Context, repo repository.SettingRepository, keys ...string) (map[string]decimal.Decimal, error) {
	values, err := repo.GetValues(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	amounts := make(map[string]decimal.Decimal, len(keys))
	for _, key := range keys {
		raw, ok := values[key]
		if !ok || raw == "" {
			log.Printf("[Settings] %s is not configured, using 0", key)
			amounts[key] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("setting %s has invalid amount %q: %w", key, raw, err)
		}
		amounts[key] = d
	}
	return amounts, nil
}

func loadBookingFees(ctx context.Context, repo repository.SettingRepository) (pricing.Fees, error) {
	a, err := loadAmounts(ctx, repo, models.SettingFeeTrainer, models.SettingFeePicker)
	if err != nil {
		return pricing.Fees{}, err
	}
	return pricing.Fees{
		TrainerPerGame: a[models.SettingFeeTrainer],
		Picker:         a[models.SettingFeePicker],
	}, nil
}

func planFeeKey(plan models.PlanType) string {
	switch plan {
	case models.PlanAnnual:
		return models.SettingFeeMembershipAnnual
	case models.PlanLifetime:
		return models.SettingFeeMembershipLifetime
	default:
		return models.SettingFeeMembershipMonthly
	}
}

func loadPlanFee(ctx context.Context, repo repository.SettingRepository, plan models.PlanType) (decimal.Decimal, error) {
	key := planFeeKey(plan)
	a, err := loadAmounts(ctx, repo, key)
	if err != nil {
		return decimal.Zero, err
	}
	return a[key], nil
}
