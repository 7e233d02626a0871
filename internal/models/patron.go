package models

import "time"

type Classification string

const (
	ClassMember    Classification = "member"
	ClassNonMember Classification = "non-member"
	ClassStudent   Classification = "student"
	ClassStaff     Classification = "staff"
	ClassAdmin     Classification = "admin"
)

// IsStaffRole reports whether the classification is an account role rather
// than a priced patron category.
func (c Classification) IsStaffRole() bool {
	return c == ClassStaff || c == ClassAdmin
}

type MembershipStatus string

const (
	MembershipMember    MembershipStatus = "member"
	MembershipNonMember MembershipStatus = "non-member"
)

type Patron struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Name             string           `gorm:"not null" json:"name"`
	Classification   Classification   `gorm:"type:varchar(20);not null;default:'non-member'" json:"classification"`
	MembershipStatus MembershipStatus `gorm:"type:varchar(20);not null;default:'non-member'" json:"membership_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
