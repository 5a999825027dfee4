package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	rentalRepo   repository.RentalRepository
	paymentRepo  repository.PaymentRepository
	clock        Clock
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	rentalRepo repository.RentalRepository,
	paymentRepo repository.PaymentRepository,
	clock Clock,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		rentalRepo:   rentalRepo,
		paymentRepo:  paymentRepo,
		clock:        clock,
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	const method = "customerService.RegisterCustomer"
	logger.EnterMethod(method, "email", c.Email, "storeID", c.StoreID)

	c.Email = strings.TrimSpace(c.Email)
	if c.FirstName == "" || c.LastName == "" || c.Email == "" {
		return nil, fail(method, fmt.Errorf("first name, last name and email are required: %w", domain.ErrValidation))
	}
	if err := s.ensureEmailFree(ctx, c.Email, uuid.Nil); err != nil {
		return nil, fail(method, err)
	}
	if _, err := s.storeRepo.GetByID(ctx, c.StoreID); err != nil {
		return nil, fail(method, fmt.Errorf("store %s: %w", c.StoreID, err))
	}

	c.Active = true
	c.CreatedAt = s.clock.Now()
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, fail(method, fmt.Errorf("create customer: %w", err))
	}

	logger.Info("Customer registered", "customerID", c.ID, "storeID", c.StoreID)
	logger.ExitMethod(method, "customerID", c.ID)
	return c, nil
}

func (s *customerService) GetCustomerProfile(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list rentals for customer %s: %w", customerID, err)
	}
	total, err := s.paymentRepo.TotalByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("total paid by customer %s: %w", customerID, err)
	}

	now := s.clock.Now()
	var active int32
	for _, rt := range rentals {
		if rt.Occupies(now) {
			active++
		}
	}
	return &domain.CustomerProfile{
		Customer:      customer,
		ActiveRentals: active,
		TotalRentals:  int32(len(rentals)),
		TotalSpent:    total,
	}, nil
}

func (s *customerService) GetRentalHistory(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	return nonEmpty(rentals, err, "no rentals found for customer "+customerID.String())
}

func (s *customerService) GetPaymentHistory(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	return nonEmpty(payments, err, "no payments found for customer "+customerID.String())
}

func (s *customerService) UpdateCustomerInfo(ctx context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (*domain.Customer, error) {
	const method = "customerService.UpdateCustomerInfo"
	logger.EnterMethod(method, "customerID", customerID)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("customer %s: %w", customerID, err))
	}
	if update.Email != nil && *update.Email != customer.Email {
		if err := s.ensureEmailFree(ctx, *update.Email, customerID); err != nil {
			return nil, fail(method, err)
		}
	}

	if update.FirstName != nil {
		customer.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		customer.LastName = *update.LastName
	}
	if update.Email != nil {
		customer.Email = *update.Email
	}
	if update.AddressID != nil {
		customer.AddressID = update.AddressID
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fail(method, fmt.Errorf("update customer %s: %w", customerID, err))
	}
	logger.ExitMethod(method, "customerID", customerID)
	return customer, nil
}

// ActivateCustomer has no precondition.
func (s *customerService) ActivateCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	return s.setActive(ctx, customerID, true)
}

// DeactivateCustomer is refused while any of the customer's rentals still has
// a return date in the future.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	const method = "customerService.DeactivateCustomer"
	logger.EnterMethod(method, "customerID", customerID)

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, fail(method, fmt.Errorf("customer %s: %w", customerID, err))
	}
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("list rentals for customer %s: %w", customerID, err))
	}
	now := s.clock.Now()
	for _, rt := range rentals {
		if rt.Occupies(now) {
			return nil, fail(method, fmt.Errorf("customer %s, rental %s: %w", customerID, rt.ID, domain.ErrHasActiveRentals))
		}
	}

	return s.setActive(ctx, customerID, false)
}

func (s *customerService) setActive(ctx context.Context, customerID uuid.UUID, active bool) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	customer.Active = active
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer %s: %w", customerID, err)
	}
	logger.Info("Customer status changed", "customerID", customerID, "active", active)
	return customer, nil
}

func (s *customerService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup customer email: %w", err)
	}
	if existing.ID != self {
		return fmt.Errorf("email %s: %w", email, domain.ErrDuplicate)
	}
	return nil
}
