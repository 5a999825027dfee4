package jobs

import (
	"context"
	"testing"
	"time"

	"filmrental-backend/internal/config"
	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository/memory"
	"filmrental-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type jobFixture struct {
	runner   *JobRunner
	clock    *service.FixedClock
	rentals  service.RentalService
	payments service.PaymentService
	store    *memory.Store
	shop     domain.Store
	film     domain.Film
	staff    *domain.Staff
}

func newJobFixture(t *testing.T, copies int) *jobFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clock := &service.FixedClock{T: t0}
	f := &jobFixture{store: store, clock: clock}

	f.shop = store.AddStore(domain.Store{AddressID: uuid.New()})
	f.film = store.AddFilm(domain.Film{Title: "Academy Dinosaur", RentalDuration: 3, RentalRate: decimal.RequireFromString("2.00")})
	for i := 0; i < copies; i++ {
		store.AddInventory(domain.Inventory{FilmID: f.film.ID, StoreID: f.shop.ID})
	}
	f.staff = &domain.Staff{FirstName: "Mike", LastName: "Hillyer", Email: "mike@store.test", Username: "mike", Active: true}
	require.NoError(t, store.StaffRepository.Create(ctx, f.staff))

	f.rentals = service.NewRentalService(store.RentalRepository, store.InventoryRepository, store.FilmRepository,
		store.CustomerRepository, store.StaffRepository, store.PaymentRepository, clock)
	f.payments = service.NewPaymentService(store.PaymentRepository, store.RentalRepository, store.InventoryRepository,
		store.FilmRepository, store.CustomerRepository, store.StaffRepository, clock)
	f.runner = NewJobRunner(&Services{Rental: f.rentals}, &config.Config{})
	return f
}

func (f *jobFixture) rent(t *testing.T, email string) *domain.Rental {
	t.Helper()
	ctx := context.Background()
	c := &domain.Customer{FirstName: "Test", LastName: "Customer", Email: email, Active: true, StoreID: f.shop.ID}
	require.NoError(t, f.store.CustomerRepository.Create(ctx, c))
	rental, err := f.rentals.Rent(ctx, c.ID, f.film.ID, f.shop.ID, f.staff.ID)
	require.NoError(t, err)
	return rental
}

func TestReportOverdueRentals(t *testing.T) {
	ctx := context.Background()

	t.Run("Nothing overdue", func(t *testing.T) {
		f := newJobFixture(t, 1)
		f.rent(t, "mary@example.test")

		report, err := f.runner.reportOverdueRentals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Count)
		assert.True(t, report.TotalLateFee.IsZero())
	})

	t.Run("Sums late fees", func(t *testing.T) {
		f := newJobFixture(t, 2)
		f.rent(t, "mary@example.test")
		f.rent(t, "patricia@example.test")
		f.clock.Set(t0.AddDate(0, 0, 5))

		report, err := f.runner.reportOverdueRentals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Count)
		assert.True(t, decimal.RequireFromString("12.00").Equal(report.TotalLateFee), "got %s", report.TotalLateFee)
	})
}

func TestCheckUnpaidOverdue(t *testing.T) {
	ctx := context.Background()
	f := newJobFixture(t, 2)
	paid := f.rent(t, "mary@example.test")
	unpaid := f.rent(t, "patricia@example.test")
	f.clock.Set(t0.AddDate(0, 0, 4))

	_, err := f.payments.ProcessRentalPayment(ctx, paid.ID, paid.CustomerID, f.staff.ID)
	require.NoError(t, err)

	flagged, err := f.runner.checkUnpaidOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{unpaid.CustomerID}, flagged)
}

func TestRunAllNightlyJobs_EmptyStore(t *testing.T) {
	f := newJobFixture(t, 0)
	assert.NotPanics(t, f.runner.RunAllNightlyJobs)
}
