package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for rental dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time in UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// RentalDays returns the billable duration of [start, end) in whole days:
// the ceiling of the elapsed time, floored at one day. A same-day or sub-day
// rental bills as a single day.
func RentalDays(start, end time.Time) int64 {
	d := end.Sub(start)
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// RentalCost is the base price for a window: per-day price times whole days.
// Taxes, fees and discounts are out of scope here.
func RentalCost(pricePerDayCents int64, start, end time.Time) int64 {
	return pricePerDayCents * RentalDays(start, end)
}

// ExtensionCost prices extraDays at the car's current per-day rate. Price
// changes apply prospectively: the rate at extension time wins, not the rate
// frozen at booking time.
func ExtensionCost(pricePerDayCents int64, extraDays int32) int64 {
	return pricePerDayCents * int64(extraDays)
}
