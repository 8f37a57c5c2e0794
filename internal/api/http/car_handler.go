package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/service"
)

type CarHandler struct {
	cars service.CarService
}

func NewCarHandler(cars service.CarService) *CarHandler {
	return &CarHandler{cars: cars}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var car domain.Car
	if !decodeBody(w, r, &car) {
		return
	}
	if err := h.cars.AddCar(r.Context(), &car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	car, err := h.cars.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

type carListResponse struct {
	Cars  []domain.Car `json:"cars"`
	Total int32        `json:"total"`
	Page  int32        `json:"page"`
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.CarAvailabilityStatus(r.URL.Query().Get("status"))
	cars, total, err := h.cars.ListCars(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carListResponse{Cars: cars, Total: total, Page: page})
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	var car domain.Car
	if !decodeBody(w, r, &car) {
		return
	}
	car.ID = id
	if err := h.cars.UpdateCar(r.Context(), &car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	if err := h.cars.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
