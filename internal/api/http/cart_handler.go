package http

import (
	"net/http"
	"time"

	"jeffika-cabs-backend/internal/service"
)

type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	cart, err := h.carts.GetCart(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type addCartItemRequest struct {
	CarID     int32     `json:"car_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	var req addCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.carts.AddItem(r.Context(), claims.UserID, req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	carID, ok := pathID(r, "carId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	if err := h.carts.RemoveItem(r.Context(), claims.UserID, carID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
