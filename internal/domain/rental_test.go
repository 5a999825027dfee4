package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRental_State(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Active before due", func(t *testing.T) {
		r := &Rental{ReturnDate: now.Add(time.Hour)}
		assert.Equal(t, RentalStateActive, r.State(now))
		assert.True(t, r.Occupies(now))
	})

	t.Run("Overdue at and after due", func(t *testing.T) {
		r := &Rental{ReturnDate: now}
		assert.Equal(t, RentalStateOverdue, r.State(now))
		assert.False(t, r.Occupies(now))

		r.ReturnDate = now.Add(-48 * time.Hour)
		assert.Equal(t, RentalStateOverdue, r.State(now))
	})

	t.Run("Returned", func(t *testing.T) {
		returned := now.Add(-time.Hour)
		r := &Rental{ReturnDate: returned, ReturnedAt: &returned}
		assert.Equal(t, RentalStateReturned, r.State(now))
		assert.False(t, r.Occupies(now))
	})
}
