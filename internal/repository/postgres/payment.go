package postgres

import (
	"context"
	"database/sql"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, amount, payment_date, rental_id, customer_id, staff_id`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	logger.DatabaseCall("INSERT", "payment", "rentalID", p.RentalID, "amount", p.Amount.String())
	query := `INSERT INTO payment (amount, payment_date, rental_id, customer_id, staff_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.Amount, p.PaymentDate, p.RentalID, p.CustomerID, p.StaffID).Scan(&p.ID)
	return mapError(err, "insert payment")
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.RentalID, &p.CustomerID, &p.StaffID)
	if err != nil {
		return nil, mapError(err, "get payment")
	}
	return p, nil
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE customer_id = $1 ORDER BY payment_date DESC`
	return r.list(ctx, "list customer payments", query, customerID)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE rental_id = $1 ORDER BY payment_date DESC`
	return r.list(ctx, "list rental payments", query, rentalID)
}

func (r *paymentRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE payment_date BETWEEN $1 AND $2 ORDER BY payment_date DESC`
	return r.list(ctx, "list payments by date", query, start, end)
}

func (r *paymentRepository) TotalByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payment WHERE customer_id = $1`
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&total); err != nil {
		return decimal.Zero, mapError(err, "sum customer payments")
	}
	return total, nil
}

func (r *paymentRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, op)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.RentalID, &p.CustomerID, &p.StaffID); err != nil {
			return nil, mapError(err, op)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, op)
	}
	return payments, nil
}
