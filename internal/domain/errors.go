package domain

import "errors"

// Errors returned by the booking core. Handlers map these to response codes;
// none of them is fatal to the process.
var (
	ErrDateInvalid       = errors.New("end date must be after start date and start date must not be in the past")
	ErrNotAvailable      = errors.New("car is not available for the requested period")
	ErrCarNotFound       = errors.New("car not found")
	ErrCarNotRentable    = errors.New("car is not open for rental")
	ErrRentalNotFound    = errors.New("rental not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidTransition = errors.New("invalid rental status transition")
	ErrNotActive         = errors.New("rental is not active")
	ErrCarInUse          = errors.New("car has a rental in progress")
)
