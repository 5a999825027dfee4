package domain

import "github.com/google/uuid"

type Staff struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Active       bool       `json:"active"`
	AddressID    *uuid.UUID `json:"address_id,omitempty"`
	StoreID      *uuid.UUID `json:"store_id,omitempty"`
}

type StaffUpdate struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	AddressID *uuid.UUID `json:"address_id,omitempty"`
}

type Store struct {
	ID             uuid.UUID  `json:"id"`
	ManagerStaffID *uuid.UUID `json:"manager_staff_id,omitempty"`
	AddressID      uuid.UUID  `json:"address_id"`
}
