package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"
	"filmrental-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inventoryResolver struct {
	inventoryRepo repository.InventoryRepository
	clock         Clock
}

func NewInventoryResolver(inventoryRepo repository.InventoryRepository, clock Clock) InventoryResolver {
	return &inventoryResolver{inventoryRepo: inventoryRepo, clock: clock}
}

// FindAvailable returns an empty slice, not an error, when every copy is out.
func (r *inventoryResolver) FindAvailable(ctx context.Context, filmID, storeID uuid.UUID) ([]domain.Inventory, error) {
	return r.inventoryRepo.FindAvailable(ctx, filmID, storeID, r.clock.Now())
}

type rentalService struct {
	rentalRepo    repository.RentalRepository
	inventoryRepo repository.InventoryRepository
	filmRepo      repository.FilmRepository
	customerRepo  repository.CustomerRepository
	staffRepo     repository.StaffRepository
	paymentRepo   repository.PaymentRepository
	resolver      InventoryResolver
	clock         Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	inventoryRepo repository.InventoryRepository,
	filmRepo repository.FilmRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	paymentRepo repository.PaymentRepository,
	clock Clock,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		inventoryRepo: inventoryRepo,
		filmRepo:      filmRepo,
		customerRepo:  customerRepo,
		staffRepo:     staffRepo,
		paymentRepo:   paymentRepo,
		resolver:      NewInventoryResolver(inventoryRepo, clock),
		clock:         clock,
	}
}

func (s *rentalService) Rent(ctx context.Context, customerID, filmID, storeID, staffID uuid.UUID) (*domain.Rental, error) {
	const method = "rentalService.Rent"
	logger.EnterMethod(method, "customerID", customerID, "filmID", filmID, "storeID", storeID, "staffID", staffID)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("customer %s: %w", customerID, err))
	}
	if !customer.Active {
		return nil, fail(method, fmt.Errorf("customer %s: %w", customerID, domain.ErrInactive))
	}

	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("film %s: %w", filmID, err))
	}

	if err := requireActiveStaff(ctx, s.staffRepo, staffID); err != nil {
		return nil, fail(method, err)
	}

	copies, err := s.resolver.FindAvailable(ctx, filmID, storeID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("find available copies: %w", err))
	}
	if len(copies) == 0 {
		return nil, fail(method, fmt.Errorf("film %s at store %s: %w", filmID, storeID, domain.ErrNoAvailability))
	}

	// A copy taken between the lookup and the insert fails with ErrConflict;
	// fall through to the next candidate.
	var lastErr error
	for _, inv := range copies {
		now := s.clock.Now()
		rental := &domain.Rental{
			RentalDate:  now,
			ReturnDate:  utils.AddDays(now, int(film.RentalDuration)),
			InventoryID: inv.ID,
			CustomerID:  customerID,
			StaffID:     staffID,
		}
		err := s.rentalRepo.Create(ctx, rental)
		if err == nil {
			logger.Info("Rental created", "rentalID", rental.ID, "inventoryID", inv.ID, "customerID", customerID, "returnDate", rental.ReturnDate)
			logger.ExitMethod(method, "rentalID", rental.ID)
			return rental, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fail(method, fmt.Errorf("create rental: %w", err))
		}
		lastErr = err
	}
	return nil, fail(method, fmt.Errorf("film %s at store %s: %w", filmID, storeID, lastErr))
}

func (s *rentalService) ReturnFilm(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	const method = "rentalService.ReturnFilm"
	logger.EnterMethod(method, "rentalID", rentalID)

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("rental %s: %w", rentalID, err))
	}

	now := s.clock.Now()
	if !rental.ReturnDate.After(now) {
		return nil, fail(method, fmt.Errorf("rental %s: %w", rentalID, domain.ErrAlreadyReturned))
	}

	rental.ReturnDate = now
	rental.ReturnedAt = &now
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, fail(method, fmt.Errorf("update rental %s: %w", rentalID, err))
	}

	logger.Info("Film returned", "rentalID", rentalID, "inventoryID", rental.InventoryID)
	logger.ExitMethod(method, "rentalID", rentalID)
	return rental, nil
}

func (s *rentalService) ExtendRental(ctx context.Context, rentalID uuid.UUID, extraDays int) (*domain.Rental, error) {
	const method = "rentalService.ExtendRental"
	logger.EnterMethod(method, "rentalID", rentalID, "extraDays", extraDays)

	if extraDays < 1 {
		return nil, fail(method, fmt.Errorf("extra days must be at least 1, got %d: %w", extraDays, domain.ErrValidation))
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("rental %s: %w", rentalID, err))
	}

	rental.ReturnDate = utils.AddDays(rental.ReturnDate, extraDays)
	// Pushing a returned rental's date past now puts the copy back out.
	if rental.ReturnedAt != nil && rental.ReturnDate.After(s.clock.Now()) {
		rental.ReturnedAt = nil
	}
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, fail(method, fmt.Errorf("update rental %s: %w", rentalID, err))
	}

	logger.ExitMethod(method, "rentalID", rentalID, "returnDate", rental.ReturnDate)
	return rental, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID uuid.UUID) error {
	const method = "rentalService.DeleteRental"
	logger.EnterMethod(method, "rentalID", rentalID)

	if _, err := s.rentalRepo.GetByID(ctx, rentalID); err != nil {
		return fail(method, fmt.Errorf("rental %s: %w", rentalID, err))
	}
	if err := s.rentalRepo.Delete(ctx, rentalID); err != nil {
		return fail(method, fmt.Errorf("delete rental %s: %w", rentalID, err))
	}

	logger.Info("Rental deleted", "rentalID", rentalID)
	logger.ExitMethod(method, "rentalID", rentalID)
	return nil
}

func (s *rentalService) CalculateLateFee(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, error) {
	rental, film, err := resolveRentalFilm(ctx, s.rentalRepo, s.inventoryRepo, s.filmRepo, rentalID)
	if err != nil {
		return decimal.Zero, err
	}
	return lateFee(rental, film, s.clock.Now()), nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", rentalID, err)
	}
	return rental, nil
}

func (s *rentalService) GetAllRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.List(ctx)
	return nonEmpty(rentals, err, "no rentals found")
}

func (s *rentalService) GetRentalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	return nonEmpty(rentals, err, "no rentals found for customer "+customerID.String())
}

func (s *rentalService) GetActiveRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListActive(ctx, s.clock.Now())
	return nonEmpty(rentals, err, "no active rentals found")
}

func (s *rentalService) GetOverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListOverdue(ctx, s.clock.Now())
	return nonEmpty(rentals, err, "no overdue rentals found")
}

// HasUnpaidOverdueRentals reports whether any of the customer's rentals whose
// return date has passed has no payment recorded against it.
func (s *rentalService) HasUnpaidOverdueRentals(ctx context.Context, customerID uuid.UUID) (bool, error) {
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("list rentals for customer %s: %w", customerID, err)
	}

	now := s.clock.Now()
	var pastDue []domain.Rental
	for _, rt := range rentals {
		if rt.ReturnDate.Before(now) {
			pastDue = append(pastDue, rt)
		}
	}
	if len(pastDue) == 0 {
		return false, nil
	}

	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("list payments for customer %s: %w", customerID, err)
	}
	paid := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		paid[p.RentalID] = true
	}
	for _, rt := range pastDue {
		if !paid[rt.ID] {
			return true, nil
		}
	}
	return false, nil
}

// resolveRentalFilm follows Rental -> Inventory -> Film. A missing link at any
// step is reported as domain.ErrNotFound.
func resolveRentalFilm(
	ctx context.Context,
	rentalRepo repository.RentalRepository,
	inventoryRepo repository.InventoryRepository,
	filmRepo repository.FilmRepository,
	rentalID uuid.UUID,
) (*domain.Rental, *domain.Film, error) {
	rental, err := rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, fmt.Errorf("rental %s: %w", rentalID, err)
	}
	inv, err := inventoryRepo.GetByID(ctx, rental.InventoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("inventory %s: %w", rental.InventoryID, err)
	}
	film, err := filmRepo.GetByID(ctx, inv.FilmID)
	if err != nil {
		return nil, nil, fmt.Errorf("film %s: %w", inv.FilmID, err)
	}
	return rental, film, nil
}

func lateFee(rental *domain.Rental, film *domain.Film, now time.Time) decimal.Decimal {
	return utils.LateFee(film.RentalRate, utils.OverdueDays(rental.ReturnDate, now))
}

func requireActiveStaff(ctx context.Context, staffRepo repository.StaffRepository, staffID uuid.UUID) error {
	staff, err := staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return fmt.Errorf("staff %s: %w", staffID, err)
	}
	if !staff.Active {
		return fmt.Errorf("staff %s: %w", staffID, domain.ErrInactive)
	}
	return nil
}

// nonEmpty turns an empty list into domain.ErrNotFound for the read operations
// that report "nothing found" as a failure.
func nonEmpty[T any](items []T, err error, msg string) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	}
	return items, nil
}

func fail(method string, err error) error {
	logger.ExitMethodWithError(method, err)
	return err
}
