package postgres

import (
	"context"
	"database/sql"
	"time"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

type filmRepository struct {
	db *sql.DB
}

func NewFilmRepository(db *sql.DB) repository.FilmRepository {
	return &filmRepository{db: db}
}

func (r *filmRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Film, error) {
	f := &domain.Film{}
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(release_year, 0), rental_duration, rental_rate,
	          COALESCE(length, 0), replacement_cost, COALESCE(rating, '') FROM film WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Title, &f.Description, &f.ReleaseYear, &f.RentalDuration, &f.RentalRate, &f.Length, &f.ReplacementCost, &f.Rating)
	if err != nil {
		return nil, mapError(err, "get film")
	}
	return f, nil
}

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inventory, error) {
	inv := &domain.Inventory{}
	query := `SELECT id, film_id, store_id FROM inventory WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.FilmID, &inv.StoreID)
	if err != nil {
		return nil, mapError(err, "get inventory")
	}
	return inv, nil
}

func (r *inventoryRepository) FindAvailable(ctx context.Context, filmID, storeID uuid.UUID, at time.Time) ([]domain.Inventory, error) {
	query := `SELECT i.id, i.film_id, i.store_id FROM inventory i
	          WHERE i.film_id = $1 AND i.store_id = $2
	          AND NOT EXISTS (SELECT 1 FROM rental r WHERE r.inventory_id = i.id AND r.return_date > $3)
	          ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query, filmID, storeID, at)
	if err != nil {
		return nil, mapError(err, "find available inventory")
	}
	defer rows.Close()

	copies := []domain.Inventory{}
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.ID, &inv.FilmID, &inv.StoreID); err != nil {
			return nil, mapError(err, "scan inventory")
		}
		copies = append(copies, inv)
	}
	return copies, mapError(rows.Err(), "iterate inventory")
}

type storeRepository struct {
	db *sql.DB
}

func NewStoreRepository(db *sql.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	s := &domain.Store{}
	var manager uuid.NullUUID
	query := `SELECT id, manager_staff_id, address_id FROM store WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &manager, &s.AddressID)
	if err != nil {
		return nil, mapError(err, "get store")
	}
	s.ManagerStaffID = uuidPtr(manager)
	return s, nil
}
