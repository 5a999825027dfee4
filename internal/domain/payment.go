package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger entry for one rental. There is no refund
// or reversal.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	RentalID    uuid.UUID       `json:"rental_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	StaffID     uuid.UUID       `json:"staff_id"`
}

type PaymentReceipt struct {
	Payment      *Payment `json:"payment"`
	Rental       *Rental  `json:"rental"`
	CustomerName string   `json:"customer_name"`
	FilmTitle    string   `json:"film_title"`
}
