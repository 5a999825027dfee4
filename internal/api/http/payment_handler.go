package http

import (
	"net/http"

	"filmrental-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type paymentRequest struct {
	RentalID   uuid.UUID `json:"rental_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

type amountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	staffID, ok := StaffIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "staff identity missing"})
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.paymentSvc.ProcessRentalPayment(r.Context(), req.RentalID, req.CustomerID, staffID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// List filters by customer_id, or by the inclusive from/to range otherwise.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, byCustomer, err := queryID(r, "customer_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if byCustomer {
		payments, err := h.paymentSvc.GetPaymentsByCustomer(r.Context(), customerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, payments)
		return
	}

	from, to, err := queryRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := h.paymentSvc.GetPaymentsByDateRange(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	revenue, err := h.paymentSvc.GetRevenueByDateRange(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, amountResponse{Amount: revenue})
}

func (h *PaymentHandler) TotalPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := h.paymentSvc.GetTotalPaidByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, amountResponse{Amount: total})
}

func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	receipt, err := h.paymentSvc.GetPaymentReceipt(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
