package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func newRentalRows(rt *domain.Rental) *sqlmock.Rows {
	var reason any
	if rt.CancelReason != "" {
		reason = rt.CancelReason
	}
	return sqlmock.NewRows([]string{
		"id", "car_id", "customer_id", "start_date", "end_date",
		"total_amount_cents", "status", "cancel_reason", "returned_at",
		"created_on", "updated_on",
	}).AddRow(
		rt.ID, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate,
		rt.TotalAmountCents, rt.Status, reason, rt.ReturnedAt,
		rt.CreatedOn, rt.UpdatedOn,
	)
}

func sampleRental(status domain.RentalStatus) *domain.Rental {
	return &domain.Rental{
		ID:               uuid.New(),
		CarID:            uuid.New(),
		CustomerID:       uuid.New(),
		StartDate:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC),
		TotalAmountCents: 30000,
		Status:           status,
		CreatedOn:        time.Now(),
		UpdatedOn:        time.Now(),
	}
}

func TestRentalRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	rt := sampleRental(domain.RentalStatusPending)
	rt.CreatedOn = time.Time{}
	rt.UpdatedOn = time.Time{}

	mock.ExpectExec(`INSERT INTO rentals`).
		WithArgs(rt.ID, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate,
			rt.TotalAmountCents, rt.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), rt)

	assert.NoError(t, err)
	assert.False(t, rt.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rt := sampleRental(domain.RentalStatusConfirmed)
		mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE id = \$1`).
			WithArgs(rt.ID).
			WillReturnRows(newRentalRows(rt))

		got, err := repo.GetByID(ctx, rt.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusConfirmed, got.Status)
		assert.Empty(t, got.CancelReason)
		assert.Nil(t, got.ReturnedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("GuardHits", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rentals SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status=\$4`).
			WithArgs(domain.RentalStatusConfirmed, sqlmock.AnyArg(), id, domain.RentalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(ctx, id, domain.RentalStatusPending, domain.RentalStatusConfirmed)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("GuardMisses", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rentals SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status=\$4`).
			WithArgs(domain.RentalStatusConfirmed, sqlmock.AnyArg(), id, domain.RentalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatus(ctx, id, domain.RentalStatusPending, domain.RentalStatusConfirmed)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositorySetCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	id := uuid.New()
	returnedAt := time.Date(2026, 8, 12, 17, 30, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE rentals SET status=\$1, returned_at=\$2, updated_on=\$3 WHERE id=\$4 AND status=\$5`).
		WithArgs(domain.RentalStatusCompleted, returnedAt, sqlmock.AnyArg(), id, domain.RentalStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SetCompleted(context.Background(), id, returnedAt)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositorySetExtension(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()
	id := uuid.New()
	newEnd := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Active", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rentals SET end_date=\$1, total_amount_cents=\$2, updated_on=\$3 WHERE id=\$4 AND status=\$5`).
			WithArgs(newEnd, int64(54000), sqlmock.AnyArg(), id, domain.RentalStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.SetExtension(ctx, id, newEnd, 54000)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NoLongerActive", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rentals SET end_date=\$1, total_amount_cents=\$2, updated_on=\$3 WHERE id=\$4 AND status=\$5`).
			WithArgs(newEnd, int64(54000), sqlmock.AnyArg(), id, domain.RentalStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.SetExtension(ctx, id, newEnd, 54000)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	rt := sampleRental(domain.RentalStatusActive)

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT (.+) FROM rentals WHERE customer_id = \$1 AND status = \$2\) AS sub`).
		WithArgs(rt.CustomerID, "Active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE customer_id = \$1 AND status = \$2 ORDER BY created_on DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(rt.CustomerID, "Active", int32(20), int32(0)).
		WillReturnRows(newRentalRows(rt))

	rentals, count, err := repo.ListByCustomer(context.Background(), rt.CustomerID, "Active", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, rentals, 1)
	assert.Equal(t, rt.ID, rentals[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryListStalePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rt := sampleRental(domain.RentalStatusPending)

	mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE status = 'Pending' AND start_date < \$1`).
		WithArgs(cutoff).
		WillReturnRows(newRentalRows(rt))

	rentals, err := repo.ListStalePending(context.Background(), cutoff)

	assert.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, domain.RentalStatusPending, rentals[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
