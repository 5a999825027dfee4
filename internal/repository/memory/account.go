package memory

import (
	"context"
	"sort"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type customerRepository struct{ t *tables }

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.stores[c.StoreID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert customer: unknown store")
	}
	if r.customerEmailTakenLocked(c.Email, uuid.Nil) {
		return errors.Wrap(domain.ErrDuplicate, "insert customer: email")
	}
	c.ID = uuid.New()
	r.t.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	c, ok := r.t.customers[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get customer")
	}
	return &c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	for _, c := range r.t.customers {
		if sameEmail(c.Email, email) {
			return &c, nil
		}
	}
	return nil, errors.Wrap(domain.ErrNotFound, "get customer by email")
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	stored, ok := r.t.customers[c.ID]
	if !ok {
		return errors.Wrap(domain.ErrNotFound, "update customer")
	}
	if r.customerEmailTakenLocked(c.Email, c.ID) {
		return errors.Wrap(domain.ErrDuplicate, "update customer: email")
	}
	stored.FirstName = c.FirstName
	stored.LastName = c.LastName
	stored.Email = c.Email
	stored.Active = c.Active
	stored.AddressID = c.AddressID
	r.t.customers[c.ID] = stored
	return nil
}

func (r *customerRepository) customerEmailTakenLocked(email string, except uuid.UUID) bool {
	for id, c := range r.t.customers {
		if id != except && sameEmail(c.Email, email) {
			return true
		}
	}
	return false
}

type staffRepository struct{ t *tables }

func (r *staffRepository) Create(ctx context.Context, st *domain.Staff) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if err := r.uniqueLocked(st, uuid.Nil); err != nil {
		return errors.Wrap(err, "insert staff")
	}
	st.ID = uuid.New()
	r.t.staff[st.ID] = *st
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	st, ok := r.t.staff[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get staff")
	}
	return &st, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.find("get staff by email", func(st domain.Staff) bool { return sameEmail(st.Email, email) })
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	return r.find("get staff by username", func(st domain.Staff) bool { return st.Username == username })
}

func (r *staffRepository) find(op string, match func(domain.Staff) bool) (*domain.Staff, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	for _, st := range r.t.staff {
		if match(st) {
			return &st, nil
		}
	}
	return nil, errors.Wrap(domain.ErrNotFound, op)
}

func (r *staffRepository) Update(ctx context.Context, st *domain.Staff) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	stored, ok := r.t.staff[st.ID]
	if !ok {
		return errors.Wrap(domain.ErrNotFound, "update staff")
	}
	if err := r.uniqueLocked(st, st.ID); err != nil {
		return errors.Wrap(err, "update staff")
	}
	stored.FirstName = st.FirstName
	stored.LastName = st.LastName
	stored.Email = st.Email
	stored.PasswordHash = st.PasswordHash
	stored.Active = st.Active
	stored.AddressID = st.AddressID
	stored.StoreID = st.StoreID
	r.t.staff[st.ID] = stored
	return nil
}

func (r *staffRepository) ListActive(ctx context.Context) ([]domain.Staff, error) {
	return r.list(func(st domain.Staff) bool { return st.Active }), nil
}

func (r *staffRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Staff, error) {
	return r.list(func(st domain.Staff) bool { return st.StoreID != nil && *st.StoreID == storeID }), nil
}

// list returns matching staff ordered by last name, then first name.
func (r *staffRepository) list(keep func(domain.Staff) bool) []domain.Staff {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	staff := []domain.Staff{}
	for _, st := range r.t.staff {
		if keep(st) {
			staff = append(staff, st)
		}
	}
	sort.Slice(staff, func(i, j int) bool {
		if staff[i].LastName != staff[j].LastName {
			return staff[i].LastName < staff[j].LastName
		}
		if staff[i].FirstName != staff[j].FirstName {
			return staff[i].FirstName < staff[j].FirstName
		}
		return staff[i].ID.String() < staff[j].ID.String()
	})
	return staff
}

func (r *staffRepository) uniqueLocked(st *domain.Staff, except uuid.UUID) error {
	for id, other := range r.t.staff {
		if id == except {
			continue
		}
		if sameEmail(other.Email, st.Email) {
			return errors.Wrap(domain.ErrDuplicate, "email")
		}
		if other.Username == st.Username {
			return errors.Wrap(domain.ErrDuplicate, "username")
		}
	}
	return nil
}
