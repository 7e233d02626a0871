package pricing

import (
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/shopspring/decimal"
)

var (
	studentRate     = decimal.NewFromInt(45)
	memberDayRate   = decimal.NewFromInt(75)
	memberNightRate = decimal.NewFromInt(85)
	defaultRate     = decimal.NewFromInt(150)
)

// Rate returns the per-game court rate. Unknown classifications (guests
// included) fall through to the non-member rate.
func Rate(class models.Classification, slot models.Slot) decimal.Decimal {
	switch class {
	case models.ClassStudent:
		return studentRate
	case models.ClassMember:
		if slot == models.SlotNight {
			return memberNightRate
		}
		return memberDayRate
	default:
		return defaultRate
	}
}
