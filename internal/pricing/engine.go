// Package pricing computes court booking totals. Everything here is pure: the
// fee table is passed in by the caller and nothing is read or persisted, so
// the preview screen and booking submission always agree on the amount.
package pricing

import (
	"github.com/Eursukkul/sports-club-service/internal/models"
	"github.com/shopspring/decimal"
)

const (
	MinGames = 1
	MaxGames = 4
)

// Fees holds the externally configured add-on amounts. Callers load them
// fresh for every computation.
type Fees struct {
	TrainerPerGame decimal.Decimal
	Picker         decimal.Decimal
}

type Input struct {
	Classification   models.Classification
	Slot             models.Slot
	Games            int
	Category         models.Category
	WithTrainer      bool
	Priests          int
	PickerSelections []bool
}

// WithCategory switches the court category. Any priest count chosen for the
// previous category is dropped.
func (in Input) WithCategory(c models.Category) Input {
	if in.Category != c {
		in.Category = c
		in.Priests = 0
	}
	return in
}

func (in Input) Validate() error {
	switch in.Slot {
	case models.SlotDay, models.SlotNight:
	default:
		return invalid("slot", "must be one of day, night")
	}
	switch in.Category {
	case models.CategorySingle, models.CategoryDouble:
	default:
		return invalid("category", "must be one of single, double")
	}
	if in.Games < MinGames || in.Games > MaxGames {
		return invalid("games", "must be between %d and %d", MinGames, MaxGames)
	}
	if in.Priests < 0 {
		return invalid("priests", "must not be negative")
	}
	if limit := PriestCap(in.Category); in.Priests > limit {
		return invalid("priests", "at most %d allowed for %s", limit, in.Category)
	}
	return nil
}

// Quote is the itemised result of Price.
type Quote struct {
	Rate            decimal.Decimal `json:"rate"`
	RateTotal       decimal.Decimal `json:"rate_total"`
	TrainerTotal    decimal.Decimal `json:"trainer_total"`
	PickerUnitFee   decimal.Decimal `json:"picker_unit_fee"`
	PickedGames     int             `json:"picked_games"`
	PickerTotal     decimal.Decimal `json:"picker_total"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	Total           decimal.Decimal `json:"total"`
}

// Price validates in and returns the booking quote. Amounts are summed at
// full precision and rounded to cents once, on the subtotal.
func Price(in Input, fees Fees) (Quote, error) {
	if err := in.Validate(); err != nil {
		return Quote{}, err
	}

	games := decimal.NewFromInt(int64(in.Games))
	rate := Rate(in.Classification, in.Slot)

	trainer := decimal.Zero
	if in.WithTrainer {
		trainer = fees.TrainerPerGame.Mul(games)
	}

	unit := PickerUnitFee(fees.Picker, in.Category, in.Priests)
	picker := TotalPickerFee(unit, in.PickerSelections, in.Games)

	q := Quote{
		Rate:            rate,
		RateTotal:       rate.Mul(games),
		TrainerTotal:    trainer,
		PickerUnitFee:   unit.Round(2),
		PickedGames:     countPicked(in.PickerSelections, in.Games),
		PickerTotal:     picker.Round(2),
		DiscountApplied: decimal.Zero,
	}
	q.Subtotal = q.RateTotal.Add(trainer).Add(picker).Round(2)
	q.Total = q.Subtotal.Sub(q.DiscountApplied)
	return q, nil
}
