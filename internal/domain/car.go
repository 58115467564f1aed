package domain

import (
	"time"

	"github.com/google/uuid"
)

type CarStatus string

const (
	CarStatusAvailable       CarStatus = "Available"
	CarStatusRented          CarStatus = "Rented"
	CarStatusMaintenance     CarStatus = "Maintenance"
	CarStatusRetired         CarStatus = "Retired"
	CarStatusPendingApproval CarStatus = "PendingApproval"
)

// ValidCarStatus reports whether s is one of the known car statuses.
func ValidCarStatus(s CarStatus) bool {
	switch s {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance, CarStatusRetired, CarStatusPendingApproval:
		return true
	}
	return false
}

type Car struct {
	ID               uuid.UUID `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	LicensePlate     string    `json:"license_plate"`
	Year             int32     `json:"year"`
	Seats            int32     `json:"seats"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Status           CarStatus `json:"status"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

// Rentable reports whether the car can accept new rental requests at all.
// A Rented car stays rentable for non-overlapping future windows; the
// interval check against existing rentals happens separately.
func (c *Car) Rentable() bool {
	return c.Status == CarStatusAvailable || c.Status == CarStatusRented
}
