package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "jeffika-cabs-backend/internal/api/http"
	"jeffika-cabs-backend/internal/mpesa"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ProcessCallback(ctx context.Context, cb *mpesa.STKCallback) error {
	args := m.Called(ctx, cb)
	return args.Error(0)
}

const successCallbackBody = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "m-1",
      "CheckoutRequestID": "ws_CO_123",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 3000},
          {"Name": "MpesaReceiptNumber", "Value": "QGR7TJ81XK"},
          {"Name": "PhoneNumber", "Value": 254712345678}
        ]
      }
    }
  }
}`

func TestPaymentHandler_MpesaCallback(t *testing.T) {
	t.Run("Acknowledges Success Callback", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("ProcessCallback", mock.Anything, mock.AnythingOfType("*mpesa.STKCallback")).
			Run(func(args mock.Arguments) {
				cb := args.Get(1).(*mpesa.STKCallback)
				assert.Equal(t, "ws_CO_123", cb.CheckoutRequestID)
				assert.True(t, cb.Succeeded())
			}).Return(nil)

		handler := httpapi.NewPaymentHandler(svc)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa/callback", strings.NewReader(successCallbackBody))
		rec := httptest.NewRecorder()

		handler.MpesaCallback(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ResultCode":0`)
		svc.AssertExpectations(t)
	})

	t.Run("Acknowledges Even When Processing Fails", func(t *testing.T) {
		// the gateway retries on non-200, so processing errors are
		// swallowed after logging
		svc := new(MockPaymentService)
		svc.On("ProcessCallback", mock.Anything, mock.Anything).Return(errors.New("database down"))

		handler := httpapi.NewPaymentHandler(svc)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa/callback", strings.NewReader(successCallbackBody))
		rec := httptest.NewRecorder()

		handler.MpesaCallback(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Rejects Unparseable Body", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa/callback", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.MpesaCallback(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ProcessCallback", mock.Anything, mock.Anything)
	})
}
