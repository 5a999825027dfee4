package memory

import (
	"context"
	"sort"
	"time"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type paymentRepository struct{ t *tables }

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.rentals[p.RentalID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert payment: unknown rental")
	}
	if _, ok := r.t.customers[p.CustomerID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert payment: unknown customer")
	}
	if _, ok := r.t.staff[p.StaffID]; !ok {
		return errors.Wrap(domain.ErrConflict, "insert payment: unknown staff")
	}

	p.ID = uuid.New()
	r.t.payments[p.ID] = *p
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	p, ok := r.t.payments[id]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, "get payment")
	}
	return &p, nil
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	return r.filter(func(p domain.Payment) bool { return p.CustomerID == customerID }), nil
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Payment, error) {
	return r.filter(func(p domain.Payment) bool { return p.RentalID == rentalID }), nil
}

func (r *paymentRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	return r.filter(func(p domain.Payment) bool {
		return !p.PaymentDate.Before(start) && !p.PaymentDate.After(end)
	}), nil
}

func (r *paymentRepository) TotalByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.filter(func(p domain.Payment) bool { return p.CustomerID == customerID }) {
		total = total.Add(p.Amount)
	}
	return total, nil
}

// filter returns matching payments, newest first.
func (r *paymentRepository) filter(keep func(domain.Payment) bool) []domain.Payment {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	payments := []domain.Payment{}
	for _, p := range r.t.payments {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.After(payments[j].PaymentDate)
		}
		return payments[i].ID.String() < payments[j].ID.String()
	})
	return payments
}
