package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type staffService struct {
	staffRepo repository.StaffRepository
	storeRepo repository.StoreRepository
	hasher    PasswordHasher
}

func NewStaffService(staffRepo repository.StaffRepository, storeRepo repository.StoreRepository, hasher PasswordHasher) StaffService {
	return &staffService{
		staffRepo: staffRepo,
		storeRepo: storeRepo,
		hasher:    hasher,
	}
}

func (s *staffService) RegisterStaff(ctx context.Context, st *domain.Staff, password string) (*domain.Staff, error) {
	const method = "staffService.RegisterStaff"
	logger.EnterMethod(method, "username", st.Username, "email", st.Email)

	st.Email = strings.TrimSpace(st.Email)
	st.Username = strings.TrimSpace(st.Username)
	if st.FirstName == "" || st.LastName == "" || st.Email == "" || st.Username == "" {
		return nil, fail(method, fmt.Errorf("first name, last name, email and username are required: %w", domain.ErrValidation))
	}
	if len(password) < minPasswordLength {
		return nil, fail(method, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, domain.ErrValidation))
	}

	if _, err := s.staffRepo.GetByEmail(ctx, st.Email); err == nil {
		return nil, fail(method, fmt.Errorf("email %s: %w", st.Email, domain.ErrDuplicate))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fail(method, fmt.Errorf("lookup staff email: %w", err))
	}
	if _, err := s.staffRepo.GetByUsername(ctx, st.Username); err == nil {
		return nil, fail(method, fmt.Errorf("username %s: %w", st.Username, domain.ErrDuplicate))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fail(method, fmt.Errorf("lookup staff username: %w", err))
	}
	if st.StoreID != nil {
		if _, err := s.storeRepo.GetByID(ctx, *st.StoreID); err != nil {
			return nil, fail(method, fmt.Errorf("store %s: %w", *st.StoreID, err))
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fail(method, fmt.Errorf("hash password: %w", err))
	}
	st.PasswordHash = hash
	st.Active = true

	if err := s.staffRepo.Create(ctx, st); err != nil {
		return nil, fail(method, fmt.Errorf("create staff: %w", err))
	}

	logger.Info("Staff registered", "staffID", st.ID, "username", st.Username)
	logger.ExitMethod(method, "staffID", st.ID)
	return st, nil
}

func (s *staffService) EnsureStaff(ctx context.Context, st *domain.Staff, password string) (*domain.Staff, bool, error) {
	existing, err := s.staffRepo.GetByUsername(ctx, strings.TrimSpace(st.Username))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup staff username: %w", err)
	}
	created, err := s.RegisterStaff(ctx, st, password)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *staffService) Authenticate(ctx context.Context, username, password string) (*domain.Staff, error) {
	st, err := s.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup staff username: %w", err)
	}
	if !st.Active {
		logger.Warn("Login attempt by inactive staff", "staffID", st.ID)
		return nil, nil
	}
	if !s.hasher.Compare(st.PasswordHash, password) {
		return nil, nil
	}
	return st, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	st, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("staff %s: %w", staffID, err)
	}
	return st, nil
}

// GetStaffByStore returns an empty slice, not an error, for a store with no
// staff.
func (s *staffService) GetStaffByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Staff, error) {
	staff, err := s.staffRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list staff for store %s: %w", storeID, err)
	}
	return staff, nil
}

func (s *staffService) UpdateStaffInfo(ctx context.Context, staffID uuid.UUID, update domain.StaffUpdate) (*domain.Staff, error) {
	const method = "staffService.UpdateStaffInfo"
	logger.EnterMethod(method, "staffID", staffID)

	st, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, fail(method, fmt.Errorf("staff %s: %w", staffID, err))
	}
	if update.Email != nil && *update.Email != st.Email {
		existing, err := s.staffRepo.GetByEmail(ctx, *update.Email)
		switch {
		case err == nil && existing.ID != staffID:
			return nil, fail(method, fmt.Errorf("email %s: %w", *update.Email, domain.ErrDuplicate))
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, fail(method, fmt.Errorf("lookup staff email: %w", err))
		}
	}

	if update.FirstName != nil {
		st.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		st.LastName = *update.LastName
	}
	if update.Email != nil {
		st.Email = *update.Email
	}
	if update.AddressID != nil {
		st.AddressID = update.AddressID
	}

	if err := s.staffRepo.Update(ctx, st); err != nil {
		return nil, fail(method, fmt.Errorf("update staff %s: %w", staffID, err))
	}
	logger.ExitMethod(method, "staffID", staffID)
	return st, nil
}

func (s *staffService) ChangePassword(ctx context.Context, staffID uuid.UUID, currentPassword, newPassword string) (bool, error) {
	const method = "staffService.ChangePassword"
	logger.EnterMethod(method, "staffID", staffID)

	st, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return false, fail(method, fmt.Errorf("staff %s: %w", staffID, err))
	}
	if !s.hasher.Compare(st.PasswordHash, currentPassword) {
		logger.ExitMethod(method, "staffID", staffID, "changed", false)
		return false, nil
	}
	if len(newPassword) < minPasswordLength {
		return false, fail(method, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, domain.ErrValidation))
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return false, fail(method, fmt.Errorf("hash password: %w", err))
	}
	st.PasswordHash = hash
	if err := s.staffRepo.Update(ctx, st); err != nil {
		return false, fail(method, fmt.Errorf("update staff %s: %w", staffID, err))
	}
	logger.ExitMethod(method, "staffID", staffID, "changed", true)
	return true, nil
}

// ActivateStaff and DeactivateStaff have no preconditions, unlike customer
// deactivation.
func (s *staffService) ActivateStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	return s.setActive(ctx, staffID, true)
}

func (s *staffService) DeactivateStaff(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	return s.setActive(ctx, staffID, false)
}

func (s *staffService) setActive(ctx context.Context, staffID uuid.UUID, active bool) (*domain.Staff, error) {
	st, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("staff %s: %w", staffID, err)
	}
	st.Active = active
	if err := s.staffRepo.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("update staff %s: %w", staffID, err)
	}
	logger.Info("Staff status changed", "staffID", staffID, "active", active)
	return st, nil
}

func (s *staffService) GetActiveStaff(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.staffRepo.ListActive(ctx)
	return nonEmpty(staff, err, "no active staff found")
}
