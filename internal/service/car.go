package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) AddCar(ctx context.Context, car *domain.Car) error {
	if car.Brand == "" || car.Model == "" || car.LicensePlate == "" {
		return errors.New("brand, model and license plate are required")
	}
	if car.PricePerDayCents < 0 {
		return errors.New("price per day must be non-negative")
	}
	// New cars wait for approval before entering the rentable fleet.
	car.Status = domain.CarStatusPendingApproval
	return s.carRepo.Create(ctx, car)
}

func (s *carService) ApproveCar(ctx context.Context, carID uuid.UUID) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.Status != domain.CarStatusPendingApproval {
		return errors.New("car is not pending approval")
	}
	return s.carRepo.UpdateStatus(ctx, carID, domain.CarStatusAvailable)
}

func (s *carService) GetCar(ctx context.Context, carID uuid.UUID) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, carID)
}

func (s *carService) ListCars(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	return s.carRepo.List(ctx, page, pageSize)
}

func (s *carService) SearchAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	if !end.After(start) {
		return nil, domain.ErrDateInvalid
	}
	return s.carRepo.ListAvailable(ctx, start, end)
}

// SetMaintenance pulls a car out of the fleet for servicing. Refused while a
// rental holds the car; the synchronizer stays the only status writer during
// a rental lifecycle.
func (s *carService) SetMaintenance(ctx context.Context, carID uuid.UUID) error {
	return s.setCatalogStatus(ctx, carID, domain.CarStatusMaintenance)
}

func (s *carService) RetireCar(ctx context.Context, carID uuid.UUID) error {
	return s.setCatalogStatus(ctx, carID, domain.CarStatusRetired)
}

func (s *carService) setCatalogStatus(ctx context.Context, carID uuid.UUID, status domain.CarStatus) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.Status == domain.CarStatusRented {
		return domain.ErrCarInUse
	}
	return s.carRepo.UpdateStatus(ctx, carID, status)
}
