package jobs

import (
	"context"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// CancelStalePendingRentals cancels Pending rentals whose start date has
// passed without a confirmation. Cancellation goes through the rental
// service, so the usual audit trail and notifications apply.
func (jr *JobRunner) CancelStalePendingRentals() {
	jr.runWithRecovery("CancelStalePendingRentals", func() {
		ctx := context.Background()

		stale, err := jr.store.RentalRepository.ListStalePending(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to list stale pending rentals", "error", err)
			return
		}

		cancelled := 0
		for _, rt := range stale {
			if _, err := jr.services.Rental.CancelRental(ctx, rt.ID, "not confirmed before start date"); err != nil {
				logger.Error("Failed to cancel stale pending rental", "rental_id", rt.ID, "error", err)
				continue
			}
			cancelled++
			logger.Debug("Cancelled stale pending rental", "rental_id", rt.ID, "start_date", rt.StartDate)
		}
		logger.Info("Cancelled stale pending rentals", "count", cancelled)
	})
}

// SendReturnReminders emails customers whose Active rental ends today or is
// already past its end date. Each reminder leaves a notification row behind;
// a rental already reminded since the start of today is skipped, so overdue
// rentals get at most one email per day.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		endOfToday := jr.clock.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
		startOfToday := endOfToday.Add(-24 * time.Hour)
		ending, err := jr.store.RentalRepository.ListActiveEndingBy(ctx, endOfToday)
		if err != nil {
			logger.Error("Failed to list rentals due for return", "error", err)
			return
		}

		sent := 0
		for _, rt := range ending {
			attrs := map[string]string{
				"rental_id": rt.ID.String(),
				"type":      "return_reminder",
			}
			reminded, err := jr.store.NotificationRepository.ExistsWithAttributes(ctx, rt.CustomerID, attrs, startOfToday)
			if err != nil {
				logger.Error("Failed to check reminder state", "rental_id", rt.ID, "error", err)
				continue
			}
			if reminded {
				logger.Debug("Reminder already sent today", "rental_id", rt.ID)
				continue
			}

			customer, err := jr.store.CustomerRepository.GetByID(ctx, rt.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			car, err := jr.store.CarRepository.GetByID(ctx, rt.CarID)
			if err != nil {
				logger.Error("Failed to load car for reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			carLabel := car.Brand + " " + car.Model + " (" + car.LicensePlate + ")"
			endDate := rt.EndDate.Format(utils.DateLayout)
			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.Name, carLabel, endDate); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rt.ID, "error", err)
				continue
			}

			note := &domain.Notification{
				CustomerID: rt.CustomerID,
				Title:      "Return reminder",
				Message:    fmt.Sprintf("Your rental of %s ends on %s", carLabel, endDate),
				Attributes: attrs,
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record reminder notification", "rental_id", rt.ID, "error", err)
			}
			sent++
		}
		logger.Info("Sent return reminders", "count", sent)
	})
}
