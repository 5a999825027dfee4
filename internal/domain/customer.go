package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	AddressID *uuid.UUID `json:"address_id,omitempty"`
	StoreID   uuid.UUID  `json:"store_id"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerUpdate carries the optional fields of a customer info change.
// Nil fields are left untouched.
type CustomerUpdate struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	AddressID *uuid.UUID `json:"address_id,omitempty"`
}

type CustomerProfile struct {
	Customer      *Customer       `json:"customer"`
	ActiveRentals int32           `json:"active_rentals"`
	TotalRentals  int32           `json:"total_rentals"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}
