package postgres

import (
	"context"
	"database/sql"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const rentalColumns = `id, rental_date, return_date, returned_at, inventory_id, customer_id, staff_id`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(s rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var returnedAt sql.NullTime
	if err := s.Scan(&rt.ID, &rt.RentalDate, &rt.ReturnDate, &returnedAt, &rt.InventoryID, &rt.CustomerID, &rt.StaffID); err != nil {
		return nil, err
	}
	if returnedAt.Valid {
		t := returnedAt.Time
		rt.ReturnedAt = &t
	}
	return rt, nil
}

// Create locks the inventory row, recounts rentals still holding the copy at
// the rental date and inserts only when there are none. Concurrent creates for
// the same copy serialize on the row lock.
func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.DatabaseCall("INSERT", "rental", "inventoryID", rt.InventoryID, "customerID", rt.CustomerID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin create rental")
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM inventory WHERE id = $1 FOR UPDATE`, rt.InventoryID).Scan(&locked)
	if err != nil {
		return mapError(err, "lock inventory")
	}

	var occupied int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM rental WHERE inventory_id = $1 AND return_date > $2`, rt.InventoryID, rt.RentalDate).Scan(&occupied)
	if err != nil {
		return mapError(err, "count inventory rentals")
	}
	if occupied > 0 {
		return errors.Wrapf(domain.ErrConflict, "inventory %s", rt.InventoryID)
	}

	query := `INSERT INTO rental (rental_date, return_date, returned_at, inventory_id, customer_id, staff_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, query, rt.RentalDate, rt.ReturnDate, rt.ReturnedAt, rt.InventoryID, rt.CustomerID, rt.StaffID).Scan(&rt.ID)
	if err != nil {
		return mapError(err, "insert rental")
	}

	err = tx.Commit()
	logger.DatabaseResult("INSERT rental", 1, err, "rentalID", rt.ID)
	return mapError(err, "commit create rental")
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get rental")
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rental SET return_date = $1, returned_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, rt.ReturnDate, rt.ReturnedAt, rt.ID)
	if err != nil {
		return mapError(err, "update rental")
	}
	return requireAffected(res, "update rental")
}

// Delete fails with domain.ErrConflict while payments still reference the
// rental.
func (r *rentalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.DatabaseCall("DELETE", "rental", "rentalID", id)
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE rental", 0, err, "rentalID", id)
		return mapError(err, "delete rental")
	}
	return requireAffected(res, "delete rental")
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental ORDER BY rental_date DESC`
	return r.list(ctx, "list rentals", query)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental WHERE customer_id = $1 ORDER BY rental_date DESC`
	return r.list(ctx, "list customer rentals", query, customerID)
}

func (r *rentalRepository) ListActive(ctx context.Context, at time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental WHERE return_date > $1 ORDER BY rental_date DESC`
	return r.list(ctx, "list active rentals", query, at)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, at time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental WHERE returned_at IS NULL AND return_date < $1 ORDER BY return_date ASC`
	return r.list(ctx, "list overdue rentals", query, at)
}

func (r *rentalRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, op)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, mapError(err, op)
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, op)
	}
	return rentals, nil
}
