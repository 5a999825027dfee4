package http

import (
	"context"
	"net/http"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/service"

	"github.com/google/uuid"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
}

func NewCustomerHandler(customerSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

type registerCustomerRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	StoreID   uuid.UUID  `json:"store_id"`
	AddressID *uuid.UUID `json:"address_id,omitempty"`
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.customerSvc.RegisterCustomer(r.Context(), &domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		StoreID:   req.StoreID,
		AddressID: req.AddressID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := h.customerSvc.GetCustomerProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *CustomerHandler) RentalHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rentals, err := h.customerSvc.GetRentalHistory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *CustomerHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := h.customerSvc.GetPaymentHistory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update domain.CustomerUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.customerSvc.UpdateCustomerInfo(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.customerSvc.ActivateCustomer)
}

func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.customerSvc.DeactivateCustomer)
}

func (h *CustomerHandler) setActive(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := apply(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
