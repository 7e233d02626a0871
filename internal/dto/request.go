package dto

const DateLayout = "2006-01-02"

type QuoteRequest struct {
	PatronID         *uint  `json:"patron_id"`
	Slot             string `json:"slot" validate:"required,oneof=day night"`
	Games            int    `json:"games" validate:"required,min=1,max=4"`
	Category         string `json:"category" validate:"required,oneof=single double"`
	WithTrainer      bool   `json:"with_trainer"`
	Priests          int    `json:"priests" validate:"min=0,max=3"`
	PickerSelections []bool `json:"picker_selections"`
}

type CreateBookingRequest struct {
	QuoteRequest
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash gcash"`
}

// AssignMembershipRequest takes no end date; the plan decides it. StartDate is
// staff only.
type AssignMembershipRequest struct {
	PlanType      string  `json:"plan_type" validate:"required,oneof=monthly annual lifetime"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash gcash"`
	StartDate     *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type EditMembershipRequest struct {
	PlanType      string  `json:"plan_type" validate:"required,oneof=monthly annual lifetime"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash gcash"`
	StartDate     *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}
