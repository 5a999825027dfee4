package http

import (
	"net/http"

	"filmrental-backend/internal/security"
	"filmrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles what the router dispatches to.
type Services struct {
	Rentals   service.RentalService
	Payments  service.PaymentService
	Customers service.CustomerService
	Staff     service.StaffService
}

const (
	pathHealth = "/healthz"
	pathLogin  = "/api/v1/auth/login"
)

// NewRouter registers every /api/v1 route. Only login and the health check
// are reachable without a token.
func NewRouter(svcs Services, tm security.TokenManager) *mux.Router {
	rentals := NewRentalHandler(svcs.Rentals)
	payments := NewPaymentHandler(svcs.Payments)
	customers := NewCustomerHandler(svcs.Customers)
	staff := NewStaffHandler(svcs.Staff, tm)

	auth := NewAuthMiddleware(tm)
	auth.AllowAnonymous(http.MethodGet, pathHealth)
	auth.AllowAnonymous(http.MethodPost, pathLogin)

	router := mux.NewRouter()
	router.Use(LoggingMiddleware, auth.Middleware)

	router.HandleFunc(pathHealth, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", staff.Login).Methods(http.MethodPost)

	api.HandleFunc("/rentals", rentals.Rent).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/active", rentals.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/rentals/overdue", rentals.ListOverdue).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/rentals/{id}/return", rentals.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/extend", rentals.Extend).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/late-fee", rentals.LateFee).Methods(http.MethodGet)

	api.HandleFunc("/payments", payments.Process).Methods(http.MethodPost)
	api.HandleFunc("/payments", payments.List).Methods(http.MethodGet)
	api.HandleFunc("/payments/revenue", payments.Revenue).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}/receipt", payments.Receipt).Methods(http.MethodGet)

	api.HandleFunc("/customers", customers.Register).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customers.Profile).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", customers.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}/rentals", customers.RentalHistory).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/payments", customers.PaymentHistory).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/total-paid", payments.TotalPaid).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/unpaid-overdue", rentals.UnpaidOverdue).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/activate", customers.Activate).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}/deactivate", customers.Deactivate).Methods(http.MethodPost)

	api.HandleFunc("/staff", staff.Register).Methods(http.MethodPost)
	api.HandleFunc("/staff", staff.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id}", staff.Get).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id}", staff.Update).Methods(http.MethodPut)
	api.HandleFunc("/staff/{id}/password", staff.ChangePassword).Methods(http.MethodPost)
	api.HandleFunc("/staff/{id}/activate", staff.Activate).Methods(http.MethodPost)
	api.HandleFunc("/staff/{id}/deactivate", staff.Deactivate).Methods(http.MethodPost)
	api.HandleFunc("/stores/{id}/staff", staff.ListByStore).Methods(http.MethodGet)

	return router
}
