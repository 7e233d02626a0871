package pricing

import (
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/shopspring/decimal"
)

// categoryDivisor is the number of slots a picker fee is split across before
// priests are taken out of the pool.
func categoryDivisor(c models.Category) int64 {
	if c == models.CategoryDouble {
		return 4
	}
	return 2
}

// PriestCap is the largest priest count accepted for a category.
func PriestCap(c models.Category) int {
	if c == models.CategoryDouble {
		return 3
	}
	return 1
}

// PickerUnitFee splits the base picker fee across the paying slots on court.
// The divisor never drops below one.
func PickerUnitFee(base decimal.Decimal, c models.Category, priests int) decimal.Decimal {
	divisor := categoryDivisor(c) - int64(priests)
	if divisor < 1 {
		divisor = 1
	}
	return base.Div(decimal.NewFromInt(divisor))
}

// TotalPickerFee charges unit once per selected game. Selections past
// gameCount are ignored.
func TotalPickerFee(unit decimal.Decimal, selections []bool, gameCount int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(countPicked(selections, gameCount))))
}

func countPicked(selections []bool, gameCount int) int {
	n := 0
	for i := 0; i < len(selections) && i < gameCount; i++ {
		if selections[i] {
			n++
		}
	}
	return n
}
