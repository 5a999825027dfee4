// Package memory keeps every table in process behind a single lock. It backs
// the "memory" database driver and the service level tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

type tables struct {
	mu        sync.RWMutex
	films     map[uuid.UUID]domain.Film
	inventory map[uuid.UUID]domain.Inventory
	stores    map[uuid.UUID]domain.Store
	rentals   map[uuid.UUID]domain.Rental
	payments  map[uuid.UUID]domain.Payment
	customers map[uuid.UUID]domain.Customer
	staff     map[uuid.UUID]domain.Staff
}

type Store struct {
	t *tables
	repository.FilmRepository
	repository.InventoryRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.CustomerRepository
	repository.StaffRepository
	repository.StoreRepository
}

func NewStore() *Store {
	t := &tables{
		films:     make(map[uuid.UUID]domain.Film),
		inventory: make(map[uuid.UUID]domain.Inventory),
		stores:    make(map[uuid.UUID]domain.Store),
		rentals:   make(map[uuid.UUID]domain.Rental),
		payments:  make(map[uuid.UUID]domain.Payment),
		customers: make(map[uuid.UUID]domain.Customer),
		staff:     make(map[uuid.UUID]domain.Staff),
	}
	return &Store{
		t:                   t,
		FilmRepository:      &filmRepository{t: t},
		InventoryRepository: &inventoryRepository{t: t},
		RentalRepository:    &rentalRepository{t: t},
		PaymentRepository:   &paymentRepository{t: t},
		CustomerRepository:  &customerRepository{t: t},
		StaffRepository:     &staffRepository{t: t},
		StoreRepository:     &storeRepository{t: t},
	}
}

// AddFilm stores a film, assigning an id when it has none.
func (s *Store) AddFilm(f domain.Film) domain.Film {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	s.t.films[f.ID] = f
	return f
}

// AddStore stores a store, assigning an id when it has none.
func (s *Store) AddStore(st domain.Store) domain.Store {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	s.t.stores[st.ID] = st
	return st
}

// AddInventory stores one copy, assigning an id when it has none.
func (s *Store) AddInventory(inv domain.Inventory) domain.Inventory {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	s.t.inventory[inv.ID] = inv
	return inv
}

func sortByID[T any](items []T, id func(T) uuid.UUID) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]).String() < id(items[j]).String()
	})
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}
