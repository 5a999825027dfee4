package repository

import (
	"context"
	"time"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lookups by id return domain.ErrNotFound (possibly wrapped) when no row matches.
// List methods return an empty slice, never an error, for zero rows.

type FilmRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Film, error)
}

type InventoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Inventory, error)
	// FindAvailable returns the copies of a film at a store that no rental
	// occupies at the given instant (no rental with return_date after at).
	FindAvailable(ctx context.Context, filmID, storeID uuid.UUID, at time.Time) ([]domain.Inventory, error)
}

type RentalRepository interface {
	// Create inserts the rental only if its inventory copy is still free at
	// rental.RentalDate. The occupancy check and the insert run as one unit
	// scoped to the inventory copy; a lost race returns domain.ErrConflict.
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Rental, error)
	// ListByCustomer orders by rental_date descending
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error)
	// ListActive returns rentals with return_date after at, newest rental first
	ListActive(ctx context.Context, at time.Time) ([]domain.Rental, error)
	// ListOverdue returns rentals with return_date before at, oldest due first
	ListOverdue(ctx context.Context, at time.Time) ([]domain.Rental, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Payment, error)
	// ListByDateRange is inclusive on both bounds, newest payment first
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Payment, error)
	// TotalByCustomer is zero when the customer has no payments
	TotalByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	GetByUsername(ctx context.Context, username string) (*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	ListActive(ctx context.Context) ([]domain.Staff, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Staff, error)
}

type StoreRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
}
