package postgres

import (
	"database/sql"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Store struct {
	db *sql.DB
	repository.FilmRepository
	repository.InventoryRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.CustomerRepository
	repository.StaffRepository
	repository.StoreRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		FilmRepository:      NewFilmRepository(db),
		InventoryRepository: NewInventoryRepository(db),
		RentalRepository:    NewRentalRepository(db),
		PaymentRepository:   NewPaymentRepository(db),
		CustomerRepository:  NewCustomerRepository(db),
		StaffRepository:     NewStaffRepository(db),
		StoreRepository:     NewStoreRepository(db),
	}
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// mapError translates driver errors into domain error kinds and attaches the
// operation name.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(domain.ErrNotFound, op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.Wrapf(domain.ErrDuplicate, "%s: %s", op, pqErr.Constraint)
		case pqForeignKeyViolation:
			return errors.Wrapf(domain.ErrConflict, "%s: %s", op, pqErr.Constraint)
		}
	}
	return errors.Wrap(err, op)
}

// requireAffected returns domain.ErrNotFound when an update or delete touched
// no row.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return errors.Wrap(domain.ErrNotFound, op)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}
