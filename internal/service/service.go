package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
)

// Clock supplies "today" for date guards. Injected so tests control time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func NewClock() Clock { return realClock{} }

type RentalService interface {
	CreateRental(ctx context.Context, customerID, carID uuid.UUID, start, end time.Time) (*domain.Rental, error)
	ConfirmRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error)
	ActivateRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error)
	CompleteRental(ctx context.Context, rentalID uuid.UUID, actualEnd *time.Time) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID uuid.UUID, reason string) (*domain.Rental, error)
	ExtendRental(ctx context.Context, customerID, rentalID uuid.UUID, extraDays int32) (*domain.Rental, error)
	QuotePrice(ctx context.Context, carID uuid.UUID, start, end time.Time) (int64, error)
	// GetRental scopes the read to customerID; staff callers pass uuid.Nil
	// to read any rental.
	GetRental(ctx context.Context, customerID, rentalID uuid.UUID) (*domain.Rental, error)
	ListRentals(ctx context.Context, customerID uuid.UUID, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

// CarStatusSynchronizer projects rental transitions onto the car's own status
// field. It never judges transition legality; that belongs to RentalService.
type CarStatusSynchronizer interface {
	OnRentalTransition(ctx context.Context, carID uuid.UUID, from, to domain.RentalStatus) error
}

// PriceAdjuster is an extension point for coupon/discount logic applied on
// top of the base quote. No adjuster ships; quotes pass through unchanged.
type PriceAdjuster interface {
	Adjust(ctx context.Context, carID uuid.UUID, baseCents int64) (int64, error)
}

type CarService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	ApproveCar(ctx context.Context, carID uuid.UUID) error
	GetCar(ctx context.Context, carID uuid.UUID) (*domain.Car, error)
	ListCars(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error)
	SearchAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	SetMaintenance(ctx context.Context, carID uuid.UUID) error
	RetireCar(ctx context.Context, carID uuid.UUID) error
}

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password, driverLicense string) (*domain.Customer, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, customerID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, customerID uuid.UUID, notificationID int64) error
}

type EmailService interface {
	SendRentalRequested(ctx context.Context, email, name, car string, startDate, endDate string, amountCents int64) error
	SendRentalConfirmed(ctx context.Context, email, name, car string) error
	SendRentalActivated(ctx context.Context, email, name, car string) error
	SendRentalCompleted(ctx context.Context, email, name, car string, amountCents int64) error
	SendRentalCancelled(ctx context.Context, email, name, car, reason string) error
	SendRentalExtended(ctx context.Context, email, name, car string, newEndDate string, amountCents int64) error
	SendReturnReminder(ctx context.Context, email, name, car string, endDate string) error
}
