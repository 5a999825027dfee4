package memory

import (
	"context"
	"sort"
	"time"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type filmRepository struct{ t *tables }

func (r *filmRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Film, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	f, ok := r.t.films[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get film")
	}
	return &f, nil
}

type storeRepository struct{ t *tables }

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	s, ok := r.t.stores[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get store")
	}
	return &s, nil
}

type inventoryRepository struct{ t *tables }

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inventory, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	inv, ok := r.t.inventory[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get inventory")
	}
	return &inv, nil
}

func (r *inventoryRepository) FindAvailable(ctx context.Context, filmID, storeID uuid.UUID, at time.Time) ([]domain.Inventory, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	copies := []domain.Inventory{}
	for _, inv := range r.t.inventory {
		if inv.FilmID != filmID || inv.StoreID != storeID {
			continue
		}
		if r.t.occupiedLocked(inv.ID, at) {
			continue
		}
		copies = append(copies, inv)
	}
	sortByID(copies, func(i domain.Inventory) uuid.UUID { return i.ID })
	return copies, nil
}

// occupiedLocked reports whether any rental holds the copy at the instant.
// Callers hold t.mu.
func (t *tables) occupiedLocked(inventoryID uuid.UUID, at time.Time) bool {
	for _, rt := range t.rentals {
		if rt.InventoryID == inventoryID && rt.Occupies(at) {
			return true
		}
	}
	return false
}

type rentalRepository struct{ t *tables }

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.inventory[rt.InventoryID]; !ok {
		return errors.Wrap(domain.ErrNotFound, "lock inventory")
	}
	if _, ok := r.t.customers[rt.CustomerID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert rental: unknown customer")
	}
	if _, ok := r.t.staff[rt.StaffID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert rental: unknown staff")
	}
	if r.t.occupiedLocked(rt.InventoryID, rt.RentalDate) {
		return errors.Wrapf(domain.ErrConflict, "inventory %s", rt.InventoryID)
	}

	rt.ID = uuid.New()
	r.t.rentals[rt.ID] = copyRental(*rt)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rt, ok := r.t.rentals[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get rental")
	}
	rt = copyRental(rt)
	return &rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	stored, ok := r.t.rentals[rt.ID]
	if !ok {
		return errors.Wrap(domain.ErrNotFound, "update rental")
	}
	stored.ReturnDate = rt.ReturnDate
	stored.ReturnedAt = rt.ReturnedAt
	r.t.rentals[rt.ID] = copyRental(stored)
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rentals[id]; !ok {
		return errors.Wrap(domain.ErrNotFound, "delete rental")
	}
	for _, p := range r.t.payments {
		if p.RentalID == id {
			return errors.Wrapf(domain.ErrConflict, "delete rental: referenced by payment %s", p.ID)
		}
	}
	delete(r.t.rentals, id)
	return nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.filter(func(domain.Rental) bool { return true }, newestRentalFirst), nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error) {
	return r.filter(func(rt domain.Rental) bool { return rt.CustomerID == customerID }, newestRentalFirst), nil
}

func (r *rentalRepository) ListActive(ctx context.Context, at time.Time) ([]domain.Rental, error) {
	return r.filter(func(rt domain.Rental) bool { return rt.Occupies(at) }, newestRentalFirst), nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, at time.Time) ([]domain.Rental, error) {
	return r.filter(func(rt domain.Rental) bool {
		return rt.ReturnedAt == nil && rt.ReturnDate.Before(at)
	}, earliestDueFirst), nil
}

func (r *rentalRepository) filter(keep func(domain.Rental) bool, less func(a, b domain.Rental) bool) []domain.Rental {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	rentals := []domain.Rental{}
	for _, rt := range r.t.rentals {
		if keep(rt) {
			rentals = append(rentals, copyRental(rt))
		}
	}
	sort.Slice(rentals, func(i, j int) bool {
		if less(rentals[i], rentals[j]) {
			return true
		}
		if less(rentals[j], rentals[i]) {
			return false
		}
		return rentals[i].ID.String() < rentals[j].ID.String()
	})
	return rentals
}

func newestRentalFirst(a, b domain.Rental) bool { return a.RentalDate.After(b.RentalDate) }

func earliestDueFirst(a, b domain.Rental) bool { return a.ReturnDate.Before(b.ReturnDate) }

// copyRental detaches the ReturnedAt pointer from caller-owned memory.
func copyRental(rt domain.Rental) domain.Rental {
	if rt.ReturnedAt != nil {
		t := *rt.ReturnedAt
		rt.ReturnedAt = &t
	}
	return rt
}
