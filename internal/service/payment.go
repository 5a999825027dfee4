package service

import (
	"context"
	"fmt"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"
	"filmrental-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	rentalRepo    repository.RentalRepository
	inventoryRepo repository.InventoryRepository
	filmRepo      repository.FilmRepository
	customerRepo  repository.CustomerRepository
	staffRepo     repository.StaffRepository
	clock         Clock
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	inventoryRepo repository.InventoryRepository,
	filmRepo repository.FilmRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	clock Clock,
) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		rentalRepo:    rentalRepo,
		inventoryRepo: inventoryRepo,
		filmRepo:      filmRepo,
		customerRepo:  customerRepo,
		staffRepo:     staffRepo,
		clock:         clock,
	}
}

// ProcessRentalPayment charges one rental period at the film's rate, plus the
// late fee when the return date has already passed. The rental is not
// modified.
func (s *paymentService) ProcessRentalPayment(ctx context.Context, rentalID, customerID, staffID uuid.UUID) (*domain.Payment, error) {
	const method = "paymentService.ProcessRentalPayment"
	logger.EnterMethod(method, "rentalID", rentalID, "customerID", customerID, "staffID", staffID)

	rental, film, err := resolveRentalFilm(ctx, s.rentalRepo, s.inventoryRepo, s.filmRepo, rentalID)
	if err != nil {
		return nil, fail(method, err)
	}
	if err := requireActiveStaff(ctx, s.staffRepo, staffID); err != nil {
		return nil, fail(method, err)
	}

	now := s.clock.Now()
	charge := utils.CalculateCharge(film.RentalRate, rental.ReturnDate, now)

	payment := &domain.Payment{
		Amount:      charge.Total,
		PaymentDate: now,
		RentalID:    rental.ID,
		CustomerID:  customerID,
		StaffID:     staffID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fail(method, fmt.Errorf("create payment for rental %s: %w", rentalID, err))
	}

	logger.Info("Payment recorded",
		"paymentID", payment.ID,
		"rentalID", rentalID,
		"amount", charge.Total.StringFixed(2),
		"lateFee", charge.LateFee.StringFixed(2),
		"overdueDays", charge.OverdueDays,
	)
	logger.ExitMethod(method, "paymentID", payment.ID)
	return payment, nil
}

func (s *paymentService) GetPaymentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	return nonEmpty(payments, err, "no payments found for customer "+customerID.String())
}

// GetTotalPaidByCustomer is zero, not an error, for a customer with no payments.
func (s *paymentService) GetTotalPaidByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.paymentRepo.TotalByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid by customer %s: %w", customerID, err)
	}
	return total, nil
}

func (s *paymentService) GetPaymentsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s before start %s: %w", end.Format(time.RFC3339), start.Format(time.RFC3339), domain.ErrValidation)
	}
	payments, err := s.paymentRepo.ListByDateRange(ctx, start, end)
	return nonEmpty(payments, err, "no payments found in range")
}

func (s *paymentService) GetRevenueByDateRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	payments, err := s.GetPaymentsByDateRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (s *paymentService) GetPaymentReceipt(ctx context.Context, paymentID uuid.UUID) (*domain.PaymentReceipt, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	rental, film, err := resolveRentalFilm(ctx, s.rentalRepo, s.inventoryRepo, s.filmRepo, payment.RentalID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, payment.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", payment.CustomerID, err)
	}

	return &domain.PaymentReceipt{
		Payment:      payment,
		Rental:       rental,
		CustomerName: customer.FullName(),
		FilmTitle:    film.Title,
	}, nil
}
