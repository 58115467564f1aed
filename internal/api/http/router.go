package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
)

// NewRouter wires all API routes. Auth endpoints are public; everything else
// requires a valid access token, and fleet operations additionally require
// the staff role.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	carHandler *CarHandler,
	rentalHandler *RentalHandler,
	noteHandler *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/cars", carHandler.ListCars).Methods(http.MethodGet)
	protected.HandleFunc("/cars/available", carHandler.SearchAvailable).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{id}", carHandler.GetCar).Methods(http.MethodGet)
	protected.HandleFunc("/cars", RequireStaff(carHandler.AddCar)).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{id}/approve", RequireStaff(carHandler.ApproveCar)).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{id}/maintenance", RequireStaff(carHandler.SetMaintenance)).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{id}/retire", RequireStaff(carHandler.RetireCar)).Methods(http.MethodPost)

	protected.HandleFunc("/quotes", rentalHandler.QuotePrice).Methods(http.MethodGet)

	protected.HandleFunc("/rentals", rentalHandler.CreateRental).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", rentalHandler.ListRentals).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", rentalHandler.GetRental).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/confirm", RequireStaff(rentalHandler.ConfirmRental)).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/activate", RequireStaff(rentalHandler.ActivateRental)).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/complete", RequireStaff(rentalHandler.CompleteRental)).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", rentalHandler.CancelRental).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/extend", rentalHandler.ExtendRental).Methods(http.MethodPost)

	protected.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}
