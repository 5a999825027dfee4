package http

import (
	"context"
	"net/http"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/security"
	"filmrental-backend/internal/service"

	"github.com/google/uuid"
)

type StaffHandler struct {
	staffSvc     service.StaffService
	tokenManager security.TokenManager
}

func NewStaffHandler(staffSvc service.StaffService, tm security.TokenManager) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc, tokenManager: tm}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Staff        *domain.Staff `json:"staff"`
}

type registerStaffRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	StoreID   *uuid.UUID `json:"store_id,omitempty"`
	AddressID *uuid.UUID `json:"address_id,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type changePasswordResponse struct {
	Changed bool `json:"changed"`
}

func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.staffSvc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if st == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	access, err := h.tokenManager.GenerateAccessToken(st.ID, st.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refresh, err := h.tokenManager.GenerateRefreshToken(st.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh, Staff: st})
}

func (h *StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.staffSvc.RegisterStaff(r.Context(), &domain.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		StoreID:   req.StoreID,
		AddressID: req.AddressID,
	}, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.staffSvc.GetStaffByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StaffHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffSvc.GetActiveStaff(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	staff, err := h.staffSvc.GetStaffByStore(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update domain.StaffUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.staffSvc.UpdateStaffInfo(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StaffHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	changed, err := h.staffSvc.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, changePasswordResponse{Changed: changed})
}

func (h *StaffHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.staffSvc.ActivateStaff)
}

func (h *StaffHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.staffSvc.DeactivateStaff)
}

func (h *StaffHandler) setActive(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uuid.UUID) (*domain.Staff, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := apply(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
