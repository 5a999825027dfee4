package postgres_test

import (
	"context"
	"testing"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{"id", "amount", "payment_date", "rental_id", "customer_id", "staff_id"}

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &domain.Payment{
			Amount:      decimal.RequireFromString("8.00"),
			PaymentDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			RentalID:    uuid.New(),
			CustomerID:  uuid.New(),
			StaffID:     uuid.New(),
		}
		newID := uuid.New()

		mock.ExpectQuery("INSERT INTO payment").
			WithArgs(p.Amount, p.PaymentDate, p.RentalID, p.CustomerID, p.StaffID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID.String()))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, newID, p.ID)
	})
}

func TestPaymentRepository_ListByDateRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(paymentCols).
			AddRow(uuid.NewString(), "8.00", end, uuid.NewString(), uuid.NewString(), uuid.NewString()).
			AddRow(uuid.NewString(), "2.99", start, uuid.NewString(), uuid.NewString(), uuid.NewString())

		mock.ExpectQuery("SELECT (.+) FROM payment WHERE payment_date BETWEEN \\$1 AND \\$2 ORDER BY payment_date DESC").
			WithArgs(start, end).
			WillReturnRows(rows)

		payments, err := repo.ListByDateRange(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.True(t, decimal.RequireFromString("8.00").Equal(payments[0].Amount))
		assert.Equal(t, end, payments[0].PaymentDate)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment WHERE payment_date BETWEEN").
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows(paymentCols))

		payments, err := repo.ListByDateRange(ctx, start, end)
		assert.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestPaymentRepository_TotalByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		customerID := uuid.New()
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payment WHERE customer_id = \\$1").
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("10.99"))

		total, err := repo.TotalByCustomer(ctx, customerID)
		assert.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10.99").Equal(total))
	})

	t.Run("No payments", func(t *testing.T) {
		customerID := uuid.New()
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))

		total, err := repo.TotalByCustomer(ctx, customerID)
		assert.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("Error", func(t *testing.T) {
		customerID := uuid.New()
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(customerID).
			WillReturnError(assert.AnError)

		_, err := repo.TotalByCustomer(ctx, customerID)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
