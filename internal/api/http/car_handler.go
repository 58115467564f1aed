package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

type addCarRequest struct {
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	LicensePlate     string `json:"license_plate"`
	Year             int32  `json:"year"`
	Seats            int32  `json:"seats"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
}

func (h *CarHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	var req addCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	car := &domain.Car{
		Brand:            req.Brand,
		Model:            req.Model,
		LicensePlate:     req.LicensePlate,
		Year:             req.Year,
		Seats:            req.Seats,
		PricePerDayCents: req.PricePerDayCents,
	}
	if err := h.carSvc.AddCar(r.Context(), car); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	car, err := h.carSvc.GetCar(r.Context(), carID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	cars, total, err := h.carSvc.ListCars(r.Context(), page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cars": cars, "total": total})
}

// SearchAvailable lists cars free over [start, end). Query parameters use
// yyyy-mm-dd dates.
func (h *CarHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
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

	cars, err := h.carSvc.SearchAvailable(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cars": cars})
}

func (h *CarHandler) ApproveCar(w http.ResponseWriter, r *http.Request) {
	h.catalogAction(w, r, h.carSvc.ApproveCar)
}

func (h *CarHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	h.catalogAction(w, r, h.carSvc.SetMaintenance)
}

func (h *CarHandler) RetireCar(w http.ResponseWriter, r *http.Request) {
	h.catalogAction(w, r, h.carSvc.RetireCar)
}

func (h *CarHandler) catalogAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, carID uuid.UUID) error) {
	carID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}
	if err := action(r.Context(), carID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
