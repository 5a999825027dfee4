package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Film struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	ReleaseYear     int32           `json:"release_year,omitempty"`
	RentalDuration  int32           `json:"rental_duration"` // whole days per rental period
	RentalRate      decimal.Decimal `json:"rental_rate"`     // charge per rental period
	Length          int32           `json:"length,omitempty"`
	ReplacementCost decimal.Decimal `json:"replacement_cost"`
	Rating          string          `json:"rating,omitempty"`
}

// Inventory is one physical copy of a film held by a store.
type Inventory struct {
	ID      uuid.UUID `json:"id"`
	FilmID  uuid.UUID `json:"film_id"`
	StoreID uuid.UUID `json:"store_id"`
}
