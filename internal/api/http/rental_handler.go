package http

import (
	"net/http"

	"filmrental-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type rentRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	FilmID     uuid.UUID `json:"film_id"`
	StoreID    uuid.UUID `json:"store_id"`
}

type extendRequest struct {
	Days int `json:"days"`
}

type lateFeeResponse struct {
	RentalID uuid.UUID       `json:"rental_id"`
	LateFee  decimal.Decimal `json:"late_fee"`
}

type unpaidOverdueResponse struct {
	CustomerID       uuid.UUID `json:"customer_id"`
	HasUnpaidOverdue bool      `json:"has_unpaid_overdue"`
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	staffID, ok := StaffIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "staff identity missing"})
		return
	}
	var req rentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.Rent(r.Context(), req.CustomerID, req.FilmID, req.StoreID, staffID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// List returns every rental, or one customer's rentals when customer_id is given.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, byCustomer, err := queryID(r, "customer_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if byCustomer {
		rentals, err := h.rentalSvc.GetRentalsByCustomer(r.Context(), customerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rentals)
		return
	}
	rentals, err := h.rentalSvc.GetAllRentals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.GetActiveRentals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.GetOverdueRentals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.ReturnFilm(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req extendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.ExtendRental(r.Context(), id, req.Days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.rentalSvc.DeleteRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) LateFee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	fee, err := h.rentalSvc.CalculateLateFee(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lateFeeResponse{RentalID: id, LateFee: fee})
}

func (h *RentalHandler) UnpaidOverdue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	flag, err := h.rentalSvc.HasUnpaidOverdueRentals(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unpaidOverdueResponse{CustomerID: id, HasUnpaidOverdue: flag})
}
