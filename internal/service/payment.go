package service

import (
	"context"
	"errors"
	"fmt"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/mpesa"
	"jeffika-cabs-backend/internal/observability"
	"jeffika-cabs-backend/internal/repository"
)

type paymentService struct {
	hireRepo repository.HireRepository
	carRepo  repository.CarRepository
}

func NewPaymentService(hireRepo repository.HireRepository, carRepo repository.CarRepository) PaymentService {
	return &paymentService{hireRepo: hireRepo, carRepo: carRepo}
}

// ProcessCallback matches a gateway result to the hire holding its
// CheckoutRequestID and applies the payment outcome. The transition is a
// single conditional update, so a replayed success callback re-applies
// the same metadata instead of failing, and a sweep racing this update
// cannot be half-overwritten.
func (s *paymentService) ProcessCallback(ctx context.Context, cb *mpesa.STKCallback) error {
	if cb.CheckoutRequestID == "" {
		return fmt.Errorf("callback missing CheckoutRequestID")
	}

	if cb.Succeeded() {
		receipt := cb.MetadataString("MpesaReceiptNumber")
		payerPhone := cb.MetadataString("PhoneNumber")
		amount := cb.MetadataAmount()

		hire, err := s.hireRepo.ConfirmPaymentByTransactionID(ctx, cb.CheckoutRequestID, receipt, payerPhone, amount)
		if errors.Is(err, domain.ErrHireNotFound) {
			s.logMiss(cb)
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirming payment %s: %w", cb.CheckoutRequestID, err)
		}

		observability.PaymentsConfirmed.Inc()
		logger.Info("hire payment confirmed",
			"hire_id", hire.ID,
			"transaction_id", cb.CheckoutRequestID,
			"receipt", receipt,
			"amount", amount)
		return nil
	}

	hire, err := s.hireRepo.FailPaymentByTransactionID(ctx, cb.CheckoutRequestID)
	if errors.Is(err, domain.ErrHireNotFound) {
		s.logMiss(cb)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failing payment %s: %w", cb.CheckoutRequestID, err)
	}

	observability.PaymentsFailed.Inc()
	logger.Warn("hire payment failed",
		"hire_id", hire.ID,
		"transaction_id", cb.CheckoutRequestID,
		"result_code", cb.ResultCode,
		"result_desc", cb.ResultDesc)

	// A failed payment frees the held cars immediately instead of
	// waiting for the expiry sweep.
	releaseHireCars(ctx, s.carRepo, hire)
	return nil
}

// logMiss records a callback that matched no hire. The gateway is still
// acknowledged; the miss is operational follow-up material only.
func (s *paymentService) logMiss(cb *mpesa.STKCallback) {
	observability.CallbackMisses.Inc()
	logger.Error("payment callback matched no hire",
		"transaction_id", cb.CheckoutRequestID,
		"result_code", cb.ResultCode,
		"result_desc", cb.ResultDesc)
}
