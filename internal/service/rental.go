package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type rentalService struct {
	tx           repository.TxManager
	rentalRepo   repository.RentalRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	noteRepo     repository.NotificationRepository
	carSync      CarStatusSynchronizer
	emailSvc     EmailService
	clock        Clock
	adjuster     PriceAdjuster
}

type RentalOption func(*rentalService)

// WithPriceAdjuster installs a coupon/discount hook applied to every quote.
func WithPriceAdjuster(a PriceAdjuster) RentalOption {
	return func(s *rentalService) { s.adjuster = a }
}

func NewRentalService(
	tx repository.TxManager,
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	noteRepo repository.NotificationRepository,
	carSync CarStatusSynchronizer,
	emailSvc EmailService,
	clock Clock,
	opts ...RentalOption,
) RentalService {
	s := &rentalService{
		tx:           tx,
		rentalRepo:   rentalRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		noteRepo:     noteRepo,
		carSync:      carSync,
		emailSvc:     emailSvc,
		clock:        clock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *rentalService) quote(ctx context.Context, carID uuid.UUID, baseCents int64) (int64, error) {
	if s.adjuster == nil {
		return baseCents, nil
	}
	return s.adjuster.Adjust(ctx, carID, baseCents)
}

// CreateRental validates the window, checks the car for interval conflicts
// and persists the new Pending rental. The availability check and the insert
// run inside one transaction holding the car's row lock, so two concurrent
// requests for overlapping windows on the same car cannot both succeed.
func (s *rentalService) CreateRental(ctx context.Context, customerID, carID uuid.UUID, start, end time.Time) (*domain.Rental, error) {
	if !end.After(start) {
		return nil, domain.ErrDateInvalid
	}
	today := truncateToDay(s.clock.Now())
	if start.Before(today) {
		return nil, domain.ErrDateInvalid
	}

	var rental *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		car, err := s.carRepo.LockByID(ctx, carID)
		if err != nil {
			return err
		}
		if !car.Rentable() {
			return domain.ErrCarNotRentable
		}

		available, err := s.carRepo.IsAvailable(ctx, carID, start, end, nil)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrNotAvailable
		}

		total, err := s.quote(ctx, carID, utils.RentalCost(car.PricePerDayCents, start, end))
		if err != nil {
			return err
		}

		rental = &domain.Rental{
			CarID:            carID,
			CustomerID:       customerID,
			StartDate:        start,
			EndDate:          end,
			TotalAmountCents: total,
			Status:           domain.RentalStatusPending,
		}
		return s.rentalRepo.Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rental, "Rental requested",
		fmt.Sprintf("Your rental request for %s is pending confirmation", formatWindow(rental)),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalRequested(ctx, email, name, car,
				rental.StartDate.Format(utils.DateLayout), rental.EndDate.Format(utils.DateLayout), rental.TotalAmountCents)
		})
	return rental, nil
}

func (s *rentalService) ConfirmRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, rt, "Rental confirmed",
		fmt.Sprintf("Your rental %s has been confirmed", formatWindow(rt)),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalConfirmed(ctx, email, name, car)
		})
	return rt, nil
}

func (s *rentalService) ActivateRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, domain.RentalStatusConfirmed, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, rt, "Rental started",
		fmt.Sprintf("Your rental %s is now active", formatWindow(rt)),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalActivated(ctx, email, name, car)
		})
	return rt, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, rentalID uuid.UUID, actualEnd *time.Time) (*domain.Rental, error) {
	returnedAt := s.clock.Now()
	if actualEnd != nil {
		returnedAt = *actualEnd
	}

	var rt *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rt, err = s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status != domain.RentalStatusActive {
			return domain.ErrInvalidTransition
		}
		if _, err := s.carRepo.LockByID(ctx, rt.CarID); err != nil {
			return err
		}

		ok, err := s.rentalRepo.SetCompleted(ctx, rentalID, returnedAt)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		rt.Status = domain.RentalStatusCompleted
		rt.ReturnedAt = &returnedAt
		return s.carSync.OnRentalTransition(ctx, rt.CarID, domain.RentalStatusActive, domain.RentalStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rt, "Rental completed",
		fmt.Sprintf("Your rental %s is complete", formatWindow(rt)),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalCompleted(ctx, email, name, car, rt.TotalAmountCents)
		})
	return rt, nil
}

// CancelRental is legal from Pending, Confirmed and Active. Cancelling an
// Active rental releases the car; earlier cancellations leave the car alone
// since the car was never flipped to Rented for this rental.
func (s *rentalService) CancelRental(ctx context.Context, rentalID uuid.UUID, reason string) (*domain.Rental, error) {
	var rt *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rt, err = s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status.Terminal() {
			return domain.ErrInvalidTransition
		}
		if _, err := s.carRepo.LockByID(ctx, rt.CarID); err != nil {
			return err
		}

		from := rt.Status
		ok, err := s.rentalRepo.SetCancelled(ctx, rentalID, from, reason)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		rt.Status = domain.RentalStatusCancelled
		rt.CancelReason = reason
		return s.carSync.OnRentalTransition(ctx, rt.CarID, from, domain.RentalStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rt, "Rental cancelled",
		fmt.Sprintf("Your rental %s was cancelled: %s", formatWindow(rt), reason),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalCancelled(ctx, email, name, car, reason)
		})
	return rt, nil
}

// ExtendRental pushes the end date of an Active rental forward by extraDays,
// re-validating the whole extended window against other rentals and pricing
// the extra days at the car's current rate.
func (s *rentalService) ExtendRental(ctx context.Context, customerID, rentalID uuid.UUID, extraDays int32) (*domain.Rental, error) {
	if extraDays <= 0 {
		return nil, domain.ErrDateInvalid
	}

	var rt *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rt, err = s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if customerID != uuid.Nil && rt.CustomerID != customerID {
			return domain.ErrRentalNotFound
		}
		if rt.Status != domain.RentalStatusActive {
			return domain.ErrNotActive
		}

		car, err := s.carRepo.LockByID(ctx, rt.CarID)
		if err != nil {
			return err
		}

		newEnd := rt.EndDate.AddDate(0, 0, int(extraDays))
		// Re-check the full [start, newEnd) window, not just the added tail,
		// excluding this rental so it does not conflict with itself.
		available, err := s.carRepo.IsAvailable(ctx, rt.CarID, rt.StartDate, newEnd, &rt.ID)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrNotAvailable
		}

		additional, err := s.quote(ctx, rt.CarID, utils.ExtensionCost(car.PricePerDayCents, extraDays))
		if err != nil {
			return err
		}

		ok, err := s.rentalRepo.SetExtension(ctx, rentalID, newEnd, rt.TotalAmountCents+additional)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotActive
		}
		rt.EndDate = newEnd
		rt.TotalAmountCents += additional
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rt, "Rental extended",
		fmt.Sprintf("Your rental was extended by %d day(s) to %s", extraDays, rt.EndDate.Format(utils.DateLayout)),
		func(email, name, car string) error {
			return s.emailSvc.SendRentalExtended(ctx, email, name, car, rt.EndDate.Format(utils.DateLayout), rt.TotalAmountCents)
		})
	return rt, nil
}

// QuotePrice is a read-only estimate; it takes no locks and writes nothing.
func (s *rentalService) QuotePrice(ctx context.Context, carID uuid.UUID, start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, domain.ErrDateInvalid
	}
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return 0, err
	}
	return s.quote(ctx, carID, utils.RentalCost(car.PricePerDayCents, start, end))
}

func (s *rentalService) GetRental(ctx context.Context, customerID, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if customerID != uuid.Nil && rt.CustomerID != customerID {
		return nil, domain.ErrRentalNotFound
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, customerID uuid.UUID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

// transition applies a single-step compare-and-swap move and the car-status
// effect it implies, inside one atomic scope. A rental already past the
// expected status makes the CAS miss and surfaces ErrInvalidTransition.
func (s *rentalService) transition(ctx context.Context, rentalID uuid.UUID, from, to domain.RentalStatus) (*domain.Rental, error) {
	var rt *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rt, err = s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status != from {
			return domain.ErrInvalidTransition
		}
		if _, err := s.carRepo.LockByID(ctx, rt.CarID); err != nil {
			return err
		}

		ok, err := s.rentalRepo.UpdateStatus(ctx, rentalID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		rt.Status = to
		return s.carSync.OnRentalTransition(ctx, rt.CarID, from, to)
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// notify records an in-app notification and sends the matching email.
// Both are best effort: a notification failure never fails the transition
// that already committed.
func (s *rentalService) notify(ctx context.Context, rt *domain.Rental, title, message string, send func(email, name, car string) error) {
	customer, err := s.customerRepo.GetByID(ctx, rt.CustomerID)
	if err != nil {
		logger.Warn("skipping rental notification, customer lookup failed", "rental_id", rt.ID, "error", err)
		return
	}
	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		logger.Warn("skipping rental notification, car lookup failed", "rental_id", rt.ID, "error", err)
		return
	}
	carLabel := fmt.Sprintf("%s %s (%s)", car.Brand, car.Model, car.LicensePlate)

	note := &domain.Notification{
		CustomerID: rt.CustomerID,
		Title:      title,
		Message:    message,
		Attributes: map[string]string{
			"rental_id": rt.ID.String(),
			"status":    string(rt.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to store rental notification", "rental_id", rt.ID, "error", err)
	}
	if err := send(customer.Email, customer.Name, carLabel); err != nil {
		logger.Warn("failed to send rental email", "rental_id", rt.ID, "error", err)
	}
}

func formatWindow(rt *domain.Rental) string {
	return fmt.Sprintf("from %s to %s", rt.StartDate.Format(utils.DateLayout), rt.EndDate.Format(utils.DateLayout))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
