package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	CarID     string `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(r)
	rental, err := h.rentalSvc.CreateRental(r.Context(), claims.CustomerID, carID, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	// Staff see every rental; customers only their own.
	customerID := claimsFrom(r).CustomerID
	if isStaff(r) {
		customerID = uuid.Nil
	}

	rental, err := h.rentalSvc.GetRental(r.Context(), customerID, rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), claimsFrom(r).CustomerID, status, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rentals": rentals, "total": total})
}

func (h *RentalHandler) ConfirmRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentalSvc.ConfirmRental(r.Context(), rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ActivateRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentalSvc.ActivateRental(r.Context(), rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) CompleteRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	var req struct {
		ActualEnd string `json:"actual_end,omitempty"`
	}
	// Body is optional for completion.
	_ = json.NewDecoder(r.Body).Decode(&req)

	var actualEnd *time.Time
	if req.ActualEnd != "" {
		t, err := utils.ParseDate(req.ActualEnd)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		actualEnd = &t
	}

	rental, err := h.rentalSvc.CompleteRental(r.Context(), rentalID, actualEnd)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) CancelRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	// Customers may only cancel their own rentals.
	if !isStaff(r) {
		if _, err := h.rentalSvc.GetRental(r.Context(), claimsFrom(r).CustomerID, rentalID); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	rental, err := h.rentalSvc.CancelRental(r.Context(), rentalID, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ExtendRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	var req struct {
		ExtraDays int32 `json:"extra_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customerID := claimsFrom(r).CustomerID
	if isStaff(r) {
		customerID = uuid.Nil
	}

	rental, err := h.rentalSvc.ExtendRental(r.Context(), customerID, rentalID, req.ExtraDays)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// QuotePrice is the read-only price estimate endpoint.
func (h *RentalHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	carID, err := uuid.Parse(r.URL.Query().Get("car_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}
	start, err := utils.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := utils.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.rentalSvc.QuotePrice(r.Context(), carID, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"car_id":             carID,
		"start_date":         start.Format(utils.DateLayout),
		"end_date":           end.Format(utils.DateLayout),
		"total_amount_cents": amount,
	})
}
