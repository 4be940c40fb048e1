package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a tracked payment: a one-shot bill or a recurring series. The
// scheduling engine only touches the derived fields (NextDueDate,
// LastPaymentDate, Recurring); everything else is carried verbatim.
type Payment struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Category string          `json:"category" db:"category"`

	Recurring       bool               `json:"recurring" db:"recurring"`
	Recurrence      *RecurrencePattern `json:"recurrence,omitempty"`
	LegacyFrequency LegacyFrequency    `json:"legacy_frequency,omitempty" db:"legacy_frequency"`

	StartDate       Date `json:"start_date" db:"start_date"`
	EndDate         Date `json:"end_date,omitempty" db:"end_date"`
	LastPaymentDate Date `json:"last_payment_date,omitempty" db:"last_payment_date"`
	NextDueDate     Date `json:"next_due_date" db:"next_due_date"`

	Reminders ReminderSet `json:"reminders,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type RecurrenceRequest struct {
	Frequency      string `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	Interval       int    `json:"interval" validate:"required,gt=0"`
	WeeklyDays     []int  `json:"weekly_days" validate:"omitempty,dive,min=0,max=6"`
	MonthlyType    string `json:"monthly_type" validate:"omitempty,oneof=by_date by_weekday"`
	MonthlyDay     int    `json:"monthly_day" validate:"omitempty,min=1,max=31"`
	MonthlyWeek    int    `json:"monthly_week" validate:"omitempty,min=-1,max=4"`
	MonthlyWeekday int    `json:"monthly_weekday" validate:"omitempty,min=0,max=6"`
}

type ReminderRequest struct {
	Kind string `json:"kind" validate:"required,oneof=on_day before"`
	Days int    `json:"days" validate:"min=0"`
}

type CreatePaymentRequest struct {
	Name            string             `json:"name" validate:"required,max=200"`
	Amount          decimal.Decimal    `json:"amount" validate:"required"`
	Category        string             `json:"category" validate:"required,max=100"`
	Recurring       bool               `json:"recurring"`
	Recurrence      *RecurrenceRequest `json:"recurrence" validate:"omitempty"`
	LegacyFrequency string             `json:"legacy_frequency" validate:"omitempty,oneof=weekly fortnightly monthly quarterly yearly"`
	StartDate       string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string             `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reminders       []ReminderRequest  `json:"reminders" validate:"omitempty,dive"`
}

type UpdatePaymentRequest struct {
	Name       string             `json:"name" validate:"required,max=200"`
	Amount     decimal.Decimal    `json:"amount" validate:"required"`
	Category   string             `json:"category" validate:"required,max=100"`
	Recurring  bool               `json:"recurring"`
	Recurrence *RecurrenceRequest `json:"recurrence" validate:"omitempty"`
	StartDate  string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string             `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reminders  []ReminderRequest  `json:"reminders" validate:"omitempty,dive"`
}

type CompletePaymentRequest struct {
	CompletionDate string `json:"completion_date" validate:"required,datetime=2006-01-02"`
}

type PaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type PaymentListResponse struct {
	Payments []*Payment `json:"payments"`
	Total    int        `json:"total"`
}

// ReminderDispatch is one concrete reminder occurrence: payment X should be
// notified on TriggerDate about a payment due on DueDate.
type ReminderDispatch struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	PaymentName string    `json:"payment_name"`
	DueDate     Date      `json:"due_date"`
	TriggerDate Date      `json:"trigger_date"`
}

type NextDueDateResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	NextDueDate Date      `json:"next_due_date"`
}

type ReminderListResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Dates     []Date    `json:"dates"`
}

// Pattern converts the request representation into the domain pattern.
func (r *RecurrenceRequest) Pattern() *RecurrencePattern {
	if r == nil {
		return nil
	}
	return &RecurrencePattern{
		Frequency:      Frequency(r.Frequency),
		Interval:       r.Interval,
		WeeklyDays:     r.WeeklyDays,
		MonthlyType:    MonthlyType(r.MonthlyType),
		MonthlyDay:     r.MonthlyDay,
		MonthlyWeek:    r.MonthlyWeek,
		MonthlyWeekday: r.MonthlyWeekday,
	}
}
