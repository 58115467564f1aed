package domain

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "Pending"
	RentalStatusConfirmed RentalStatus = "Confirmed"
	RentalStatusActive    RentalStatus = "Active"
	RentalStatusCompleted RentalStatus = "Completed"
	RentalStatusCancelled RentalStatus = "Cancelled"
)

// Terminal reports whether no further transition may leave s.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// BlocksAvailability reports whether a rental in status s occupies its
// interval for conflict checks. Pending blocks too, so two requests for the
// same window cannot both reach Confirmed.
func (s RentalStatus) BlocksAvailability() bool {
	return !s.Terminal()
}

type Rental struct {
	ID               uuid.UUID    `json:"id"`
	CarID            uuid.UUID    `json:"car_id"`
	CustomerID       uuid.UUID    `json:"customer_id"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	TotalAmountCents int64        `json:"total_amount_cents"`
	Status           RentalStatus `json:"status"`
	CancelReason     string       `json:"cancel_reason,omitempty"`
	ReturnedAt       *time.Time   `json:"returned_at,omitempty"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}
