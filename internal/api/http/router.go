package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jeffika-cabs-backend/internal/security"
	"jeffika-cabs-backend/internal/service"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Auth     service.AuthService
	Cars     service.CarService
	Carts    service.CartService
	Hires    service.HireService
	Payments service.PaymentService
	Receipts service.ReceiptService
	Tokens   security.TokenManager
}

// NewRouter builds the full route table. The payment callback and auth
// endpoints are public; everything else under /api/v1 requires a valid
// access token, and car mutations require the admin role.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authHandler := NewAuthHandler(deps.Auth)
	carHandler := NewCarHandler(deps.Cars)
	cartHandler := NewCartHandler(deps.Carts)
	hireHandler := NewHireHandler(deps.Hires, deps.Receipts)
	paymentHandler := NewPaymentHandler(deps.Payments)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/payments/mpesa/callback", paymentHandler.MpesaCallback).Methods("POST")
	api.HandleFunc("/cars", carHandler.List).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods("GET")

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(deps.Tokens))

	protected.HandleFunc("/cars", AdminOnly(carHandler.Create)).Methods("POST")
	protected.HandleFunc("/cars/{id:[0-9]+}", AdminOnly(carHandler.Update)).Methods("PUT")
	protected.HandleFunc("/cars/{id:[0-9]+}", AdminOnly(carHandler.Delete)).Methods("DELETE")

	protected.HandleFunc("/cart", cartHandler.Get).Methods("GET")
	protected.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	protected.HandleFunc("/cart/items/{carId:[0-9]+}", cartHandler.RemoveItem).Methods("DELETE")

	protected.HandleFunc("/hires", hireHandler.Create).Methods("POST")
	protected.HandleFunc("/hires", hireHandler.List).Methods("GET")
	protected.HandleFunc("/hires/{id:[0-9]+}", hireHandler.Get).Methods("GET")
	protected.HandleFunc("/hires/{id:[0-9]+}/complete", hireHandler.Complete).Methods("POST")
	protected.HandleFunc("/hires/{id:[0-9]+}/cancel", hireHandler.Cancel).Methods("POST")
	protected.HandleFunc("/hires/{id:[0-9]+}/receipt", hireHandler.SendReceipt).Methods("POST")

	return router
}
