package utils

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LateFeeMultiplier is applied to the film's rental rate for each overdue day.
var LateFeeMultiplier = decimal.NewFromFloat(1.5)

// ChargeBreakdown provides detailed breakdown of a rental payment
type ChargeBreakdown struct {
	RentalRate  decimal.Decimal `json:"rental_rate"`
	OverdueDays int64           `json:"overdue_days"`
	LateFee     decimal.Decimal `json:"late_fee"`
	Total       decimal.Decimal `json:"total"`
}

// AddDays moves t forward by whole calendar days, keeping the wall-clock time
// of day in t's location.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// OverdueDays returns the number of started 24 hour periods between due and
// now. Any fraction of a day counts as a full day. Zero when now is not after
// due.
func OverdueDays(due, now time.Time) int64 {
	if !now.After(due) {
		return 0
	}
	days := now.Sub(due).Hours() / 24
	return int64(math.Ceil(days))
}

// LateFee computes overdue days × rate × LateFeeMultiplier.
func LateFee(rate decimal.Decimal, overdueDays int64) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(overdueDays)).Mul(LateFeeMultiplier)
}

// CalculateCharge prices one rental payment at the given instant: the rental
// rate, plus the late fee when the return date has already passed.
func CalculateCharge(rate decimal.Decimal, returnDate, now time.Time) ChargeBreakdown {
	b := ChargeBreakdown{
		RentalRate: rate,
		LateFee:    decimal.Zero,
	}
	if returnDate.Before(now) {
		b.OverdueDays = OverdueDays(returnDate, now)
		b.LateFee = LateFee(rate, b.OverdueDays)
	}
	b.Total = b.RentalRate.Add(b.LateFee)
	return b
}
