package service_test

import (
	"context"
	"testing"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentDeps struct {
	paymentRepo   *MockPaymentRepo
	rentalRepo    *MockRentalRepo
	inventoryRepo *MockInventoryRepo
	filmRepo      *MockFilmRepo
	customerRepo  *MockCustomerRepo
	staffRepo     *MockStaffRepo
	clock         *service.FixedClock
	svc           service.PaymentService
}

func newPaymentDeps() *paymentDeps {
	d := &paymentDeps{
		paymentRepo:   new(MockPaymentRepo),
		rentalRepo:    new(MockRentalRepo),
		inventoryRepo: new(MockInventoryRepo),
		filmRepo:      new(MockFilmRepo),
		customerRepo:  new(MockCustomerRepo),
		staffRepo:     new(MockStaffRepo),
		clock:         &service.FixedClock{T: t0},
	}
	d.svc = service.NewPaymentService(d.paymentRepo, d.rentalRepo, d.inventoryRepo, d.filmRepo, d.customerRepo, d.staffRepo, d.clock)
	return d
}

func TestPaymentService_ProcessRentalPayment(t *testing.T) {
	ctx := context.Background()
	rentalID, inventoryID, filmID := uuid.New(), uuid.New(), uuid.New()
	customerID, staffID := uuid.New(), uuid.New()
	film := &domain.Film{ID: filmID, Title: "Academy Dinosaur", RentalDuration: 3, RentalRate: decimal.RequireFromString("2.00")}
	inv := &domain.Inventory{ID: inventoryID, FilmID: filmID}
	staff := &domain.Staff{ID: staffID, Active: true}

	// rented at T0 for 3 days, paid at T0+5d
	rentedAt := t0
	rental := &domain.Rental{ID: rentalID, RentalDate: rentedAt, ReturnDate: rentedAt.AddDate(0, 0, 3), InventoryID: inventoryID, CustomerID: customerID}

	t.Run("Late payment adds fee", func(t *testing.T) {
		d := newPaymentDeps()
		d.clock.Set(rentedAt.AddDate(0, 0, 5))
		d.rentalRepo.On("GetByID", ctx, rentalID).Return(rental, nil)
		d.inventoryRepo.On("GetByID", ctx, inventoryID).Return(inv, nil)
		d.filmRepo.On("GetByID", ctx, filmID).Return(film, nil)
		d.staffRepo.On("GetByID", ctx, staffID).Return(staff, nil)
		d.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := d.svc.ProcessRentalPayment(ctx, rentalID, customerID, staffID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("8.00").Equal(payment.Amount), "got %s", payment.Amount)
		assert.Equal(t, rentedAt.AddDate(0, 0, 5), payment.PaymentDate)
		assert.Equal(t, customerID, payment.CustomerID)
		d.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("On time payment is the rental rate", func(t *testing.T) {
		d := newPaymentDeps()
		d.clock.Set(rentedAt.AddDate(0, 0, 1))
		d.rentalRepo.On("GetByID", ctx, rentalID).Return(rental, nil)
		d.inventoryRepo.On("GetByID", ctx, inventoryID).Return(inv, nil)
		d.filmRepo.On("GetByID", ctx, filmID).Return(film, nil)
		d.staffRepo.On("GetByID", ctx, staffID).Return(staff, nil)
		d.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := d.svc.ProcessRentalPayment(ctx, rentalID, customerID, staffID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("2.00").Equal(payment.Amount))
	})

	t.Run("Missing film", func(t *testing.T) {
		d := newPaymentDeps()
		d.rentalRepo.On("GetByID", ctx, rentalID).Return(rental, nil)
		d.inventoryRepo.On("GetByID", ctx, inventoryID).Return(inv, nil)
		d.filmRepo.On("GetByID", ctx, filmID).Return(nil, errors.Wrap(domain.ErrNotFound, "get film"))

		_, err := d.svc.ProcessRentalPayment(ctx, rentalID, customerID, staffID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		d.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Staff inactive", func(t *testing.T) {
		d := newPaymentDeps()
		d.rentalRepo.On("GetByID", ctx, rentalID).Return(rental, nil)
		d.inventoryRepo.On("GetByID", ctx, inventoryID).Return(inv, nil)
		d.filmRepo.On("GetByID", ctx, filmID).Return(film, nil)
		d.staffRepo.On("GetByID", ctx, staffID).Return(&domain.Staff{ID: staffID}, nil)

		_, err := d.svc.ProcessRentalPayment(ctx, rentalID, customerID, staffID)
		assert.ErrorIs(t, err, domain.ErrInactive)
	})
}

func TestPaymentService_Reads(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	start := t0
	end := t0.AddDate(0, 1, 0)

	t.Run("Total is zero without payments", func(t *testing.T) {
		d := newPaymentDeps()
		d.paymentRepo.On("TotalByCustomer", ctx, customerID).Return(decimal.Zero, nil)

		total, err := d.svc.GetTotalPaidByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("Payments by customer empty is NotFound", func(t *testing.T) {
		d := newPaymentDeps()
		d.paymentRepo.On("ListByCustomer", ctx, customerID).Return([]domain.Payment{}, nil)

		_, err := d.svc.GetPaymentsByCustomer(ctx, customerID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Revenue sums the range", func(t *testing.T) {
		d := newPaymentDeps()
		d.paymentRepo.On("ListByDateRange", ctx, start, end).Return([]domain.Payment{
			{Amount: decimal.RequireFromString("8.00"), PaymentDate: end},
			{Amount: decimal.RequireFromString("2.99"), PaymentDate: start},
		}, nil)

		revenue, err := d.svc.GetRevenueByDateRange(ctx, start, end)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10.99").Equal(revenue))
	})

	t.Run("Empty range is NotFound", func(t *testing.T) {
		d := newPaymentDeps()
		d.paymentRepo.On("ListByDateRange", ctx, start, end).Return([]domain.Payment{}, nil)

		_, err := d.svc.GetPaymentsByDateRange(ctx, start, end)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = d.svc.GetRevenueByDateRange(ctx, start, end)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Inverted range", func(t *testing.T) {
		d := newPaymentDeps()

		_, err := d.svc.GetPaymentsByDateRange(ctx, end, start.Add(-time.Second))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPaymentService_GetPaymentReceipt(t *testing.T) {
	ctx := context.Background()
	paymentID, rentalID, inventoryID, filmID, customerID := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	d := newPaymentDeps()
	payment := &domain.Payment{ID: paymentID, Amount: decimal.RequireFromString("2.00"), RentalID: rentalID, CustomerID: customerID}
	rental := &domain.Rental{ID: rentalID, InventoryID: inventoryID}
	d.paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)
	d.rentalRepo.On("GetByID", ctx, rentalID).Return(rental, nil)
	d.inventoryRepo.On("GetByID", ctx, inventoryID).Return(&domain.Inventory{ID: inventoryID, FilmID: filmID}, nil)
	d.filmRepo.On("GetByID", ctx, filmID).Return(&domain.Film{ID: filmID, Title: "Academy Dinosaur"}, nil)
	d.customerRepo.On("GetByID", ctx, customerID).Return(&domain.Customer{ID: customerID, FirstName: "Mary", LastName: "Smith"}, nil)

	receipt, err := d.svc.GetPaymentReceipt(ctx, paymentID)
	require.NoError(t, err)
	assert.Equal(t, payment, receipt.Payment)
	assert.Equal(t, rental, receipt.Rental)
	assert.Equal(t, "Mary Smith", receipt.CustomerName)
	assert.Equal(t, "Academy Dinosaur", receipt.FilmTitle)
}
