package service

import (
	"context"
	"time"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock supplies "now" to every temporal rule. Services never read the wall
// clock directly.
type Clock interface {
	Now() time.Time
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type InventoryResolver interface {
	FindAvailable(ctx context.Context, filmID, storeID uuid.UUID) ([]domain.Inventory, error)
}

type RentalService interface {
	Rent(ctx context.Context, customerID, filmID, storeID, staffID uuid.UUID) (*domain.Rental, error)
	ReturnFilm(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error)
	ExtendRental(ctx context.Context, rentalID uuid.UUID, extraDays int) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID uuid.UUID) error
	CalculateLateFee(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, error)
	GetRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error)
	GetAllRentals(ctx context.Context) ([]domain.Rental, error)
	GetRentalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error)
	GetActiveRentals(ctx context.Context) ([]domain.Rental, error)
	// GetOverdueRentals lists rentals past their return date that were never
	// returned. Rentals closed by ReturnFilm are excluded.
	GetOverdueRentals(ctx context.Context) ([]domain.Rental, error)
	HasUnpaidOverdueRentals(ctx context.Context, customerID uuid.UUID) (bool, error)
}

type PaymentService interface {
	ProcessRentalPayment(ctx context.Context, rentalID, customerID, staffID uuid.UUID) (*domain.Payment, error)
	GetPaymentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	GetTotalPaidByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	GetPaymentsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Payment, error)
	GetRevenueByDateRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	GetPaymentReceipt(ctx context.Context, paymentID uuid.UUID) (*domain.PaymentReceipt, error)
}

type CustomerService interface {
	RegisterCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomerProfile(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error)
	GetRentalHistory(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error)
	GetPaymentHistory(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	UpdateCustomerInfo(ctx context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (*domain.Customer, error)
	ActivateCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error)
}

type StaffService interface {
	RegisterStaff(ctx context.Context, staff *domain.Staff, password string) (*domain.Staff, error)
	// EnsureStaff registers staff unless the username is already taken, in
	// which case the existing account is returned and the bool is false.
	EnsureStaff(ctx context.Context, staff *domain.Staff, password string) (*domain.Staff, bool, error)
	// Authenticate returns nil without error for an unknown username, an
	// inactive account or a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.Staff, error)
	GetStaffByID(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
	GetStaffByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Staff, error)
	UpdateStaffInfo(ctx context.Context, staffID uuid.UUID, update domain.StaffUpdate) (*domain.Staff, error)
	// ChangePassword returns false when currentPassword does not match.
	ChangePassword(ctx context.Context, staffID uuid.UUID, currentPassword, newPassword string) (bool, error)
	ActivateStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
	DeactivateStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
	GetActiveStaff(ctx context.Context) ([]domain.Staff, error)
}
