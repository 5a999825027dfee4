package postgres

import (
	"context"
	"database/sql"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

const customerColumns = `id, first_name, last_name, email, active, address_id, store_id, created_at`

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func scanCustomer(s rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	var addressID uuid.NullUUID
	if err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Active, &addressID, &c.StoreID, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.AddressID = uuidPtr(addressID)
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customer (first_name, last_name, email, active, address_id, store_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Active, nullUUID(c.AddressID), c.StoreID, c.CreatedAt).Scan(&c.ID)
	return mapError(err, "insert customer")
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get customer")
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer WHERE LOWER(email) = LOWER($1)`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "get customer by email")
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customer SET first_name=$1, last_name=$2, email=$3, active=$4, address_id=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Active, nullUUID(c.AddressID), c.ID)
	if err != nil {
		return mapError(err, "update customer")
	}
	return requireAffected(res, "update customer")
}
