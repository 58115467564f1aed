package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, brand, model, license_plate, year, seats, price_per_day_cents, status, created_on, updated_on`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.LicensePlate, &c.Year, &c.Seats, &c.PricePerDayCents, &c.Status, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	query := `INSERT INTO cars (id, brand, model, license_plate, year, seats, price_per_day_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	car.CreatedOn = now
	car.UpdatedOn = now
	_, err := conn(ctx, r.db).ExecContext(ctx, query, car.ID, car.Brand, car.Model, car.LicensePlate, car.Year, car.Seats, car.PricePerDayCents, car.Status, now, now)
	return err
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	car, err := scanCar(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	return car, err
}

func (r *carRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`
	car, err := scanCar(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	return car, err
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, license_plate=$3, year=$4, seats=$5, price_per_day_cents=$6, status=$7, updated_on=$8 WHERE id=$9`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, car.Brand, car.Model, car.LicensePlate, car.Year, car.Seats, car.PricePerDayCents, car.Status, time.Now(), car.ID)
	return err
}

func (r *carRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CarStatus) error {
	// Plain set: re-applying the same status is a no-op, which keeps the
	// synchronizer idempotent.
	query := `UPDATE cars SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func (r *carRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM cars WHERE status <> 'Retired'`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + carColumns + ` FROM cars WHERE status <> 'Retired' ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *c)
	}
	return cars, count, rows.Err()
}

// ListAvailable returns approved, available cars with no blocking rental
// overlapping [start, end).
func (r *carRepository) ListAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c
	          WHERE c.status = 'Available'
	            AND NOT EXISTS (
	                SELECT 1 FROM rentals r
	                WHERE r.car_id = c.id
	                  AND r.status NOT IN ('Cancelled', 'Completed')
	                  AND r.start_date < $2 AND r.end_date > $1
	            )
	          ORDER BY c.price_per_day_cents ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

// IsAvailable implements the half-open overlap rule: [s1,e1) and [s2,e2)
// conflict iff s1 < e2 AND s2 < e1, so back-to-back rentals do not collide.
func (r *carRepository) IsAvailable(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeRentalID *uuid.UUID) (bool, error) {
	query := `SELECT count(*) FROM rentals
	          WHERE car_id = $1
	            AND status NOT IN ('Cancelled', 'Completed')
	            AND start_date < $3 AND end_date > $2`
	args := []any{carID, start, end}
	if excludeRentalID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeRentalID)
	}

	var overlapping int
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&overlapping); err != nil {
		return false, err
	}
	return overlapping == 0, nil
}
