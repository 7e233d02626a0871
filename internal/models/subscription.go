package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanType string

const (
	PlanMonthly  PlanType = "monthly"
	PlanAnnual   PlanType = "annual"
	PlanLifetime PlanType = "lifetime"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanMonthly, PlanAnnual, PlanLifetime:
		return true
	}
	return false
}

// Subscription is one membership term. EndDate is nil only for lifetime plans.
type Subscription struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PatronID      uint            `gorm:"not null;index" json:"patron_id"`
	PlanType      PlanType        `gorm:"type:varchar(20);not null" json:"plan_type"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount_paid"`
	ProcessedBy   *uint           `json:"processed_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Patron *Patron `gorm:"foreignKey:PatronID" json:"patron,omitempty"`
}
