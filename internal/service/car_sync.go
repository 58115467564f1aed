package service

import (
	"context"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carStatusSynchronizer struct {
	carRepo repository.CarRepository
}

func NewCarStatusSynchronizer(carRepo repository.CarRepository) CarStatusSynchronizer {
	return &carStatusSynchronizer{carRepo: carRepo}
}

// OnRentalTransition applies the car-status effect of a rental transition.
// The write is a plain set, so replaying the same event leaves the car in the
// same state rather than erroring.
func (s *carStatusSynchronizer) OnRentalTransition(ctx context.Context, carID uuid.UUID, from, to domain.RentalStatus) error {
	next, changed := CarStatusAfter(from, to)
	if !changed {
		return nil
	}
	return s.carRepo.UpdateStatus(ctx, carID, next)
}

// CarStatusAfter maps a rental transition to the car status it implies.
// Entering Active marks the car Rented; leaving Active, by completion or by
// cancellation, releases it back to Available. Every other transition leaves
// the car untouched.
func CarStatusAfter(from, to domain.RentalStatus) (domain.CarStatus, bool) {
	switch {
	case from != domain.RentalStatusActive && to == domain.RentalStatusActive:
		return domain.CarStatusRented, true
	case from == domain.RentalStatusActive && (to == domain.RentalStatusCompleted || to == domain.RentalStatusCancelled):
		return domain.CarStatusAvailable, true
	}
	return "", false
}
