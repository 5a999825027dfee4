package domain

import (
	"time"

	"github.com/google/uuid"
)

type RentalState string

const (
	RentalStateActive   RentalState = "ACTIVE"
	RentalStateOverdue  RentalState = "OVERDUE"
	RentalStateReturned RentalState = "RETURNED"
)

// Rental joins a customer, an inventory copy and the staff member who handed it out.
//
// ReturnDate is written with the scheduled due date when the rental is created
// and overwritten with the actual return instant when the copy comes back.
// Availability, return and deactivation checks all compare against ReturnDate.
// ReturnedAt is set by a return and cleared again when an extension moves
// ReturnDate back into the future.
type Rental struct {
	ID          uuid.UUID  `json:"id"`
	RentalDate  time.Time  `json:"rental_date"`
	ReturnDate  time.Time  `json:"return_date"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	InventoryID uuid.UUID  `json:"inventory_id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	StaffID     uuid.UUID  `json:"staff_id"`
}

// State reports where the rental stands at the given instant.
func (r *Rental) State(now time.Time) RentalState {
	if r.ReturnedAt != nil {
		return RentalStateReturned
	}
	if now.Before(r.ReturnDate) {
		return RentalStateActive
	}
	return RentalStateOverdue
}

// Occupies reports whether the rental still holds its copy at the given instant.
func (r *Rental) Occupies(now time.Time) bool {
	return r.ReturnDate.After(now)
}
