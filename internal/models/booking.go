package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Slot string

const (
	SlotDay   Slot = "day"
	SlotNight Slot = "night"
)

type Category string

const (
	CategorySingle Category = "single"
	CategoryDouble Category = "double"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentGCash
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Booking struct {
	ID               uint                      `gorm:"primaryKey" json:"id"`
	PatronID         *uint                     `gorm:"index" json:"patron_id,omitempty"`
	Slot             Slot                      `gorm:"type:varchar(10);not null" json:"slot"`
	Date             datatypes.Date            `gorm:"not null" json:"date"`
	Games            int                       `gorm:"not null" json:"games"`
	Category         Category                  `gorm:"type:varchar(10);not null" json:"category"`
	WithTrainer      bool                      `gorm:"not null;default:false" json:"with_trainer"`
	Priests          int                       `gorm:"not null;default:0" json:"priests"`
	PickerSelections datatypes.JSONSlice[bool] `json:"picker_selections"`
	PaymentMethod    PaymentMethod             `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus    PaymentStatus             `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	Subtotal         decimal.Decimal           `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DiscountApplied  decimal.Decimal           `gorm:"type:numeric(12,2);not null;default:0" json:"discount_applied"`
	Total            decimal.Decimal           `gorm:"type:numeric(12,2);not null" json:"total"`
	Reference        string                    `gorm:"type:char(8);uniqueIndex;not null" json:"reference"`
	ProcessedBy      *uint                     `json:"processed_by,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`

	Patron *Patron `gorm:"foreignKey:PatronID" json:"patron,omitempty"`
}
