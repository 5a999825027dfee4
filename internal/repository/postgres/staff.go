package postgres

import (
	"context"
	"database/sql"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

const staffColumns = `id, first_name, last_name, email, username, password, active, address_id, store_id`

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func scanStaff(s rowScanner) (*domain.Staff, error) {
	st := &domain.Staff{}
	var addressID, storeID uuid.NullUUID
	if err := s.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &st.Username, &st.PasswordHash, &st.Active, &addressID, &storeID); err != nil {
		return nil, err
	}
	st.AddressID = uuidPtr(addressID)
	st.StoreID = uuidPtr(storeID)
	return st, nil
}

func (r *staffRepository) Create(ctx context.Context, st *domain.Staff) error {
	query := `INSERT INTO staff (first_name, last_name, email, username, password, active, address_id, store_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, st.FirstName, st.LastName, st.Email, st.Username, st.PasswordHash, st.Active, nullUUID(st.AddressID), nullUUID(st.StoreID)).Scan(&st.ID)
	return mapError(err, "insert staff")
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	return r.getOne(ctx, "get staff", `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.getOne(ctx, "get staff by email", `SELECT `+staffColumns+` FROM staff WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	return r.getOne(ctx, "get staff by username", `SELECT `+staffColumns+` FROM staff WHERE username = $1`, username)
}

func (r *staffRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.Staff, error) {
	st, err := scanStaff(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, op)
	}
	return st, nil
}

func (r *staffRepository) Update(ctx context.Context, st *domain.Staff) error {
	query := `UPDATE staff SET first_name=$1, last_name=$2, email=$3, password=$4, active=$5, address_id=$6, store_id=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, st.FirstName, st.LastName, st.Email, st.PasswordHash, st.Active, nullUUID(st.AddressID), nullUUID(st.StoreID), st.ID)
	if err != nil {
		return mapError(err, "update staff")
	}
	return requireAffected(res, "update staff")
}

func (r *staffRepository) ListActive(ctx context.Context) ([]domain.Staff, error) {
	return r.list(ctx, "list active staff", `SELECT `+staffColumns+` FROM staff WHERE active = true ORDER BY last_name, first_name`)
}

func (r *staffRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Staff, error) {
	return r.list(ctx, "list store staff", `SELECT `+staffColumns+` FROM staff WHERE store_id = $1 ORDER BY last_name, first_name`, storeID)
}

func (r *staffRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Staff, error) {
	logger.DatabaseCall("SELECT", "staff", "operation", op)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, op)
	}
	defer rows.Close()

	staff := []domain.Staff{}
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, mapError(err, op)
		}
		staff = append(staff, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, op)
	}
	return staff, nil
}
