package http

import (
	"net/http"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/service"
)

type HireHandler struct {
	hires    service.HireService
	receipts service.ReceiptService
}

func NewHireHandler(hires service.HireService, receipts service.ReceiptService) *HireHandler {
	return &HireHandler{hires: hires, receipts: receipts}
}

type createHireItemRequest struct {
	CarID     int32     `json:"car_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type createHireRequest struct {
	Items         []createHireItemRequest `json:"items"`
	PaymentMethod string                  `json:"payment_method"`
	Phone         string                  `json:"phone,omitempty"`
}

type createHireResponse struct {
	Hire            *domain.Hire `json:"hire"`
	AwaitingPayment bool         `json:"awaiting_payment"`
	CustomerMessage string       `json:"customer_message,omitempty"`
}

// Create checks out a hire. A gateway failure after the hire is persisted
// returns 502 with the pending hire attached so the client can retry
// payment without duplicating the order.
func (h *HireHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	var req createHireRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := service.CreateHireInput{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Phone:         req.Phone,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.CreateHireItemInput{
			CarID:     item.CarID,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
		})
	}

	result, err := h.hires.CreateHire(r.Context(), claims.UserID, in)
	if err != nil {
		if result != nil && result.Hire != nil {
			writeJSON(w, http.StatusBadGateway, createHireResponse{
				Hire:            result.Hire,
				CustomerMessage: "payment could not be initiated, retry from your hires",
			})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createHireResponse{
		Hire:            result.Hire,
		AwaitingPayment: result.AwaitingPayment,
		CustomerMessage: result.CustomerMessage,
	})
}

func (h *HireHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid hire id"})
		return
	}
	hire, err := h.hires.GetHire(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hire)
}

type hireListResponse struct {
	Hires []domain.Hire `json:"hires"`
	Total int32         `json:"total"`
	Page  int32         `json:"page"`
}

func (h *HireHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	page, pageSize := pagination(r)
	hires, total, err := h.hires.ListHires(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hireListResponse{Hires: hires, Total: total, Page: page})
}

func (h *HireHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid hire id"})
		return
	}
	hire, err := h.hires.CompleteHire(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hire)
}

func (h *HireHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid hire id"})
		return
	}
	hire, err := h.hires.CancelHire(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hire)
}

type receiptResponse struct {
	Sent     bool   `json:"sent"`
	Filename string `json:"filename"`
}

func (h *HireHandler) SendReceipt(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid hire id"})
		return
	}
	filename, err := h.receipts.SendReceipt(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptResponse{Sent: true, Filename: filename})
}
