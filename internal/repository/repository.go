package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
)

// TxManager runs fn inside a single database transaction. The context passed
// to fn carries the transaction; repository calls made with it join the same
// atomic scope and commit or roll back together.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	// LockByID reads the car with a row lock. Only meaningful inside a
	// TxManager scope; it serializes check-then-act sequences per car.
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CarStatus) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error)
	ListAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	// IsAvailable reports whether no rental in a blocking status overlaps
	// [start, end) for the car. excludeRentalID, when non-nil, leaves that
	// rental out of the check so an extension does not conflict with itself.
	IsAvailable(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeRentalID *uuid.UUID) (bool, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	// UpdateStatus applies a compare-and-swap transition: the row changes only
	// if its current status equals from. Returns false when the guard misses.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.RentalStatus) (bool, error)
	SetCancelled(ctx context.Context, id uuid.UUID, from domain.RentalStatus, reason string) (bool, error)
	SetCompleted(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error)
	SetExtension(ctx context.Context, id uuid.UUID, newEnd time.Time, newTotalCents int64) (bool, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]domain.Rental, error)
	ListStalePending(ctx context.Context, startedBefore time.Time) ([]domain.Rental, error)
	ListActiveEndingBy(ctx context.Context, by time.Time) ([]domain.Rental, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, customerID uuid.UUID) error
	// ExistsWithAttributes reports whether the customer already has a
	// notification created at or after since carrying all of attrs. Jobs use
	// it to avoid resending the same reminder.
	ExistsWithAttributes(ctx context.Context, customerID uuid.UUID, attrs map[string]string, since time.Time) (bool, error)
}
