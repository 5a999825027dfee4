package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOverdueDays(t *testing.T) {
	due := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected int64
	}{
		{"Before due", due.Add(-time.Hour), 0},
		{"Exactly due", due, 0},
		{"One second late", due.Add(time.Second), 1},
		{"Exactly one day late", due.Add(24 * time.Hour), 1},
		{"Two and a half days late", due.Add(60 * time.Hour), 3},
		{"Ten days late", due.AddDate(0, 0, 10), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OverdueDays(due, tt.now))
		})
	}
}

func TestLateFee(t *testing.T) {
	rate := decimal.RequireFromString("2.99")

	t.Run("Zero days", func(t *testing.T) {
		assert.True(t, LateFee(rate, 0).IsZero())
	})

	t.Run("Three days", func(t *testing.T) {
		// 3 × 2.99 × 1.5
		assert.True(t, decimal.RequireFromString("13.455").Equal(LateFee(rate, 3)))
	})
}

func TestCalculateCharge(t *testing.T) {
	rate := decimal.RequireFromString("2.00")
	due := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("On time", func(t *testing.T) {
		b := CalculateCharge(rate, due, due.Add(-time.Minute))
		assert.Equal(t, int64(0), b.OverdueDays)
		assert.True(t, b.LateFee.IsZero())
		assert.True(t, rate.Equal(b.Total))
	})

	t.Run("At the due instant", func(t *testing.T) {
		b := CalculateCharge(rate, due, due)
		assert.True(t, rate.Equal(b.Total))
	})

	t.Run("Two days late", func(t *testing.T) {
		b := CalculateCharge(rate, due, due.AddDate(0, 0, 2))
		assert.Equal(t, int64(2), b.OverdueDays)
		assert.True(t, decimal.RequireFromString("6.00").Equal(b.LateFee))
		assert.True(t, decimal.RequireFromString("8.00").Equal(b.Total))
	})
}

func TestAddDays(t *testing.T) {
	start := time.Date(2024, 1, 30, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 2, 9, 15, 0, 0, time.UTC), AddDays(start, 3))
}
