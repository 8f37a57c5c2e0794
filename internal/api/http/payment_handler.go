package http

import (
	"encoding/json"
	"net/http"

	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/mpesa"
	"jeffika-cabs-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

// MpesaCallback receives the gateway's asynchronous payment result. The
// gateway retries on non-200 responses, so this endpoint always
// acknowledges once the payload parses; reconciliation problems are
// logged and counted instead of surfaced.
func (h *PaymentHandler) MpesaCallback(w http.ResponseWriter, r *http.Request) {
	var envelope mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		logger.Error("Unparseable payment callback", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid callback payload"})
		return
	}

	if err := h.payments.ProcessCallback(r.Context(), &envelope.Body.STKCallback); err != nil {
		logger.Error("Payment callback processing failed", "error", err)
	}

	writeJSON(w, http.StatusOK, callbackAck{ResultCode: 0, ResultDesc: "Callback received successfully"})
}
