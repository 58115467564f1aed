package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, car_id, customer_id, start_date, end_date, total_amount_cents, status, cancel_reason, returned_at, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var cancelReason sql.NullString
	err := row.Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.StartDate, &rt.EndDate, &rt.TotalAmountCents, &rt.Status, &cancelReason, &rt.ReturnedAt, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	rt.CancelReason = cancelReason.String
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	query := `INSERT INTO rentals (id, car_id, customer_id, start_date, end_date, total_amount_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, rt.ID, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate, rt.TotalAmountCents, rt.Status, now, now)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

// UpdateStatus is the compare-and-swap transition guard: a concurrent writer
// that already moved the rental away from the expected status makes the
// UPDATE match zero rows, and the caller sees false.
func (r *rentalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.RentalStatus) (bool, error) {
	query := `UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *rentalRepository) SetCancelled(ctx context.Context, id uuid.UUID, from domain.RentalStatus, reason string) (bool, error) {
	query := `UPDATE rentals SET status=$1, cancel_reason=$2, updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, domain.RentalStatusCancelled, reason, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *rentalRepository) SetCompleted(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	query := `UPDATE rentals SET status=$1, returned_at=$2, updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, domain.RentalStatusCompleted, returnedAt, time.Now(), id, domain.RentalStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *rentalRepository) SetExtension(ctx context.Context, id uuid.UUID, newEnd time.Time, newTotalCents int64) (bool, error) {
	query := `UPDATE rentals SET end_date=$1, total_amount_cents=$2, updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, newEnd, newTotalCents, time.Now(), id, domain.RentalStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1`
	args := []any{customerID}
	argIdx := 2
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM (` + query + `) AS sub`
	if err := conn(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := collectRentals(rows)
	return rentals, count, err
}

func (r *rentalRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1 ORDER BY start_date ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) ListStalePending(ctx context.Context, startedBefore time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'Pending' AND start_date < $1 ORDER BY start_date ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, startedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) ListActiveEndingBy(ctx context.Context, by time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'Active' AND end_date <= $1 ORDER BY end_date ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
