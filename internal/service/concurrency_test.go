package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository/memory"
	"filmrental-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalService_RentLastCopyConcurrently(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := &service.FixedClock{T: t0}

	shop := store.AddStore(domain.Store{AddressID: uuid.New()})
	film := store.AddFilm(domain.Film{Title: "Academy Dinosaur", RentalDuration: 3, RentalRate: decimal.RequireFromString("2.00")})
	store.AddInventory(domain.Inventory{FilmID: film.ID, StoreID: shop.ID})

	staff := &domain.Staff{FirstName: "Mike", LastName: "Hillyer", Email: "mike@store.test", Username: "mike", Active: true}
	require.NoError(t, store.StaffRepository.Create(ctx, staff))

	const workers = 12
	customers := make([]uuid.UUID, workers)
	for i := range customers {
		c := &domain.Customer{FirstName: "C", LastName: "Ustomer", Email: uuid.NewString() + "@example.test", Active: true, StoreID: shop.ID}
		require.NoError(t, store.CustomerRepository.Create(ctx, c))
		customers[i] = c.ID
	}

	svc := service.NewRentalService(store.RentalRepository, store.InventoryRepository, store.FilmRepository,
		store.CustomerRepository, store.StaffRepository, store.PaymentRepository, clock)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Rent(ctx, customers[i], film.ID, shop.ID, staff.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNoAvailability), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	rentals, err := store.RentalRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}
