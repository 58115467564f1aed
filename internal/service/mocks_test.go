package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
)

// passthroughTx runs the function directly; atomicity is the database's job
// and is exercised in the repository tests.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) LockByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CarStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}
func (m *MockCarRepo) ListAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) IsAvailable(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeRentalID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, carID, start, end, excludeRentalID)
	return args.Bool(0), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) SetCancelled(ctx context.Context, id uuid.UUID, from domain.RentalStatus, reason string) (bool, error) {
	args := m.Called(ctx, id, from, reason)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) SetCompleted(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, returnedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) SetExtension(ctx context.Context, id uuid.UUID, newEnd time.Time, newTotalCents int64) (bool, error) {
	args := m.Called(ctx, id, newEnd, newTotalCents)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByCar(ctx context.Context, carID uuid.UUID) ([]domain.Rental, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListStalePending(ctx context.Context, startedBefore time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, startedBefore)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListActiveEndingBy(ctx context.Context, by time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, by)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, customerID uuid.UUID) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}
func (m *MockNotificationRepo) ExistsWithAttributes(ctx context.Context, customerID uuid.UUID, attrs map[string]string, since time.Time) (bool, error) {
	args := m.Called(ctx, customerID, attrs, since)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalRequested(ctx context.Context, email, name, car string, startDate, endDate string, amountCents int64) error {
	args := m.Called(ctx, email, name, car, startDate, endDate, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalConfirmed(ctx context.Context, email, name, car string) error {
	args := m.Called(ctx, email, name, car)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalActivated(ctx context.Context, email, name, car string) error {
	args := m.Called(ctx, email, name, car)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCompleted(ctx context.Context, email, name, car string, amountCents int64) error {
	args := m.Called(ctx, email, name, car, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCancelled(ctx context.Context, email, name, car, reason string) error {
	args := m.Called(ctx, email, name, car, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalExtended(ctx context.Context, email, name, car string, newEndDate string, amountCents int64) error {
	args := m.Called(ctx, email, name, car, newEndDate, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, car string, endDate string) error {
	args := m.Called(ctx, email, name, car, endDate)
	return args.Error(0)
}
