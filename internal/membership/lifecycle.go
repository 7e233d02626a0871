// Package membership holds the time rules of a subscription term: how the end
// date is derived from the plan, when a term counts as active or expiring, and
// what an active term does to the owning patron.
package membership

import (
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/sports-club-service/internal/models"
)

// ExpiringWindowDays is how many calendar days before the end date a term is
// reported as expiring soon.
const ExpiringWindowDays = 3

var (
	ErrInvalidPlan    = errors.New("invalid plan type")
	ErrEndBeforeStart = errors.New("end date is before start date")
)

type State string

const (
	StateActive       State = "active"
	StateExpiringSoon State = "expiring-soon"
	StateExpired      State = "expired"
)

// EndDate derives the end of a term. Lifetime plans never end and ignore any
// override. For other plans an explicit override wins over the computed date.
func EndDate(plan models.PlanType, start time.Time, override *time.Time) (*time.Time, error) {
	switch plan {
	case models.PlanLifetime:
		return nil, nil
	case models.PlanMonthly, models.PlanAnnual:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}

	if override != nil {
		if override.Before(start) {
			return nil, ErrEndBeforeStart
		}
		end := *override
		return &end, nil
	}

	var end time.Time
	if plan == models.PlanMonthly {
		end = start.AddDate(0, 1, 0)
	} else {
		end = start.AddDate(1, 0, 0)
	}
	return &end, nil
}

// IsActive reports whether the term has not yet ended at now.
func IsActive(sub *models.Subscription, now time.Time) bool {
	return sub.EndDate == nil || sub.EndDate.After(now)
}

// IsExpiringSoon reports whether an active, finite term ends within
// ExpiringWindowDays calendar days of now. Days are counted on dates in now's
// location, so the window edge does not move during the day.
func IsExpiringSoon(sub *models.Subscription, now time.Time) bool {
	if sub.EndDate == nil || !sub.EndDate.After(now) {
		return false
	}
	return DaysBetween(now, *sub.EndDate) <= ExpiringWindowDays
}

func StateAt(sub *models.Subscription, now time.Time) State {
	switch {
	case !IsActive(sub, now):
		return StateExpired
	case IsExpiringSoon(sub, now):
		return StateExpiringSoon
	default:
		return StateActive
	}
}

// DaysBetween counts calendar days from a to b, using a's location for both.
func DaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Promote applies an active membership to its patron. Students keep their
// classification for pricing.
func Promote(p *models.Patron) {
	p.MembershipStatus = models.MembershipMember
	if p.Classification != models.ClassStudent {
		p.Classification = models.ClassMember
	}
}
