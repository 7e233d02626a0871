package models

import "time"

const (
	SettingFeeTrainer            = "fee_trainer"
	SettingFeePicker             = "fee_picker"
	SettingFeeMembershipMonthly  = "fee_membership_monthly"
	SettingFeeMembershipAnnual   = "fee_membership_annual"
	SettingFeeMembershipLifetime = "fee_membership_lifetime"
)

// Setting rows are owned by the settings screens; this service only reads them.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
