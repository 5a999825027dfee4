package memory

import (
	"context"
	"fmt"
	"os"
	"time"

	"filmrental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by LoadSeed. Money and ids are strings
// so they parse exactly.
type SeedFile struct {
	Stores []struct {
		ID        string `yaml:"id"`
		AddressID string `yaml:"address_id"`
	} `yaml:"stores"`
	Films []struct {
		ID              string `yaml:"id"`
		Title           string `yaml:"title"`
		Description     string `yaml:"description"`
		ReleaseYear     int32  `yaml:"release_year"`
		RentalDuration  int32  `yaml:"rental_duration"`
		RentalRate      string `yaml:"rental_rate"`
		Length          int32  `yaml:"length"`
		ReplacementCost string `yaml:"replacement_cost"`
		Rating          string `yaml:"rating"`
	} `yaml:"films"`
	Inventory []struct {
		ID      string `yaml:"id"`
		FilmID  string `yaml:"film_id"`
		StoreID string `yaml:"store_id"`
		Copies  int    `yaml:"copies"`
	} `yaml:"inventory"`
	Customers []struct {
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Email     string `yaml:"email"`
		StoreID   string `yaml:"store_id"`
	} `yaml:"customers"`
}

// LoadSeed reads a seed file from disk and applies it to the store.
func (s *Store) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	return s.Seed(data)
}

// Seed applies YAML seed data. Entries without an id get a generated one.
func (s *Store) Seed(data []byte) error {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, st := range f.Stores {
		id, err := optionalUUID(st.ID)
		if err != nil {
			return fmt.Errorf("store %q: %w", st.ID, err)
		}
		addressID, err := optionalUUID(st.AddressID)
		if err != nil {
			return fmt.Errorf("store %q address: %w", st.ID, err)
		}
		s.AddStore(domain.Store{ID: id, AddressID: addressID})
	}

	for _, fl := range f.Films {
		id, err := optionalUUID(fl.ID)
		if err != nil {
			return fmt.Errorf("film %q: %w", fl.Title, err)
		}
		if fl.RentalDuration < 1 {
			return fmt.Errorf("film %q: rental_duration must be positive", fl.Title)
		}
		rate, err := decimal.NewFromString(fl.RentalRate)
		if err != nil {
			return fmt.Errorf("film %q rental_rate: %w", fl.Title, err)
		}
		replacement := decimal.Zero
		if fl.ReplacementCost != "" {
			if replacement, err = decimal.NewFromString(fl.ReplacementCost); err != nil {
				return fmt.Errorf("film %q replacement_cost: %w", fl.Title, err)
			}
		}
		s.AddFilm(domain.Film{
			ID:              id,
			Title:           fl.Title,
			Description:     fl.Description,
			ReleaseYear:     fl.ReleaseYear,
			RentalDuration:  fl.RentalDuration,
			RentalRate:      rate,
			Length:          fl.Length,
			ReplacementCost: replacement,
			Rating:          fl.Rating,
		})
	}

	for _, inv := range f.Inventory {
		filmID, err := uuid.Parse(inv.FilmID)
		if err != nil {
			return fmt.Errorf("inventory film_id %q: %w", inv.FilmID, err)
		}
		storeID, err := uuid.Parse(inv.StoreID)
		if err != nil {
			return fmt.Errorf("inventory store_id %q: %w", inv.StoreID, err)
		}
		id, err := optionalUUID(inv.ID)
		if err != nil {
			return fmt.Errorf("inventory %q: %w", inv.ID, err)
		}
		copies := inv.Copies
		if copies < 1 || id != uuid.Nil {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			s.AddInventory(domain.Inventory{ID: id, FilmID: filmID, StoreID: storeID})
		}
	}

	for _, c := range f.Customers {
		storeID, err := uuid.Parse(c.StoreID)
		if err != nil {
			return fmt.Errorf("customer %q store_id: %w", c.Email, err)
		}
		customer := &domain.Customer{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Active:    true,
			StoreID:   storeID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.CustomerRepository.Create(context.Background(), customer); err != nil {
			return fmt.Errorf("customer %q: %w", c.Email, err)
		}
	}

	return nil
}

func optionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
