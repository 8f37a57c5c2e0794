package utils

import (
	"fmt"
	"math"
	"time"

	"jeffika-cabs-backend/internal/domain"
)

// RentalDays returns the number of billable days for a hire line item.
// Any fraction of a day is billed as a full day, and the minimum billed
// unit is one day. The range must be chronological: end strictly after
// start.
func RentalDays(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, domain.ErrInvalidDateRange
	}
	days := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// LineItemTotal computes totalPrice = billable days x pricePerDay.
func LineItemTotal(start, end time.Time, pricePerDay int64) (int64, error) {
	if pricePerDay < 0 {
		return 0, fmt.Errorf("price per day must not be negative: %d", pricePerDay)
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}
	return days * pricePerDay, nil
}

// HireTotal sums the line item totals of a hire.
func HireTotal(items []domain.HireItem) int64 {
	var total int64
	for _, item := range items {
		total += item.TotalPrice
	}
	return total
}
