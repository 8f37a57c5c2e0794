package service

import (
	"context"
	"fmt"
	"strings"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/observability"
	"jeffika-cabs-backend/internal/repository"
	"jeffika-cabs-backend/internal/utils"
)

type hireService struct {
	hireRepo repository.HireRepository
	carRepo  repository.CarRepository
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
	gateway  PaymentGateway
}

func NewHireService(
	hireRepo repository.HireRepository,
	carRepo repository.CarRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
) HireService {
	return &hireService{
		hireRepo: hireRepo,
		carRepo:  carRepo,
		cartRepo: cartRepo,
		userRepo: userRepo,
		gateway:  gateway,
	}
}

func (s *hireService) CreateHire(ctx context.Context, userID int32, in CreateHireInput) (*CreateHireResult, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrNoItems
	}
	if in.PaymentMethod != domain.PaymentMethodCash && in.PaymentMethod != domain.PaymentMethodMpesa {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPaymentMethod, in.PaymentMethod)
	}

	// Resolve the payment phone before any side effects so a missing
	// phone never leaves an orphan hire behind.
	var phone string
	if in.PaymentMethod == domain.PaymentMethodMpesa {
		var err error
		phone, err = s.resolvePhone(ctx, userID, in.Phone)
		if err != nil {
			return nil, err
		}
	}

	items := make([]domain.HireItem, 0, len(in.Items))
	for _, itemIn := range in.Items {
		car, err := s.carRepo.GetByID(ctx, itemIn.CarID)
		if err != nil {
			return nil, fmt.Errorf("resolving car %d: %w", itemIn.CarID, err)
		}
		total, err := utils.LineItemTotal(itemIn.StartDate, itemIn.EndDate, car.PricePerDay)
		if err != nil {
			return nil, fmt.Errorf("car %d: %w", itemIn.CarID, err)
		}
		items = append(items, domain.HireItem{
			CarID:       car.ID,
			StartDate:   itemIn.StartDate,
			EndDate:     itemIn.EndDate,
			PricePerDay: car.PricePerDay,
			TotalPrice:  total,
		})
	}

	hire := &domain.Hire{
		UserID:      userID,
		Items:       items,
		TotalAmount: utils.HireTotal(items),
		Status:      domain.HireStatusPending,
		Payment: domain.Payment{
			Method: in.PaymentMethod,
			Amount: utils.HireTotal(items),
			Status: domain.PaymentStatusPending,
		},
	}

	if err := s.hireRepo.Create(ctx, hire); err != nil {
		return nil, fmt.Errorf("persisting hire: %w", err)
	}
	observability.HiresCreated.Inc()

	// Cart clearing is best-effort: the hire record is already the
	// source of truth.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		logger.Warn("failed to clear cart after hire creation", "user_id", userID, "hire_id", hire.ID, "error", err)
	}

	// Inventory holds are also best-effort per car; a car that was not
	// Available is logged and left for the sweeper to reconcile.
	for _, item := range hire.Items {
		booked, err := s.carRepo.UpdateAvailability(ctx, item.CarID, []domain.CarAvailabilityStatus{domain.CarStatusAvailable}, domain.CarStatusBooked)
		if err != nil {
			logger.Warn("failed to mark car as booked", "car_id", item.CarID, "hire_id", hire.ID, "error", err)
			continue
		}
		if !booked {
			logger.Warn("car was not available at hire creation", "car_id", item.CarID, "hire_id", hire.ID)
		}
	}

	result := &CreateHireResult{Hire: hire}
	if in.PaymentMethod == domain.PaymentMethodCash {
		return result, nil
	}

	pushResp, err := s.gateway.STKPush(ctx, hire.TotalAmount, phone, fmt.Sprintf("HIRE-%d", hire.ID))
	if err != nil {
		// The hire survives gateway failures; it stays pending with no
		// transaction id so the client can retry payment.
		logger.Error("stk push failed", "hire_id", hire.ID, "error", err)
		return result, fmt.Errorf("initiating payment for hire %d: %w", hire.ID, err)
	}

	if err := s.hireRepo.SetTransactionID(ctx, hire.ID, pushResp.CheckoutRequestID); err != nil {
		logger.Error("failed to store transaction id", "hire_id", hire.ID, "transaction_id", pushResp.CheckoutRequestID, "error", err)
		return result, fmt.Errorf("storing transaction id for hire %d: %w", hire.ID, err)
	}
	hire.Payment.TransactionID = pushResp.CheckoutRequestID

	result.AwaitingPayment = true
	result.CustomerMessage = pushResp.CustomerMessage
	return result, nil
}

func (s *hireService) resolvePhone(ctx context.Context, userID int32, requestPhone string) (string, error) {
	if phone := strings.TrimSpace(requestPhone); phone != "" {
		return phone, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolving user %d: %w", userID, err)
	}
	if user.PhoneNumber == "" {
		return "", domain.ErrMissingPhone
	}
	return user.PhoneNumber, nil
}

func (s *hireService) GetHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error) {
	return s.hireRepo.GetByIDForUser(ctx, hireID, userID)
}

func (s *hireService) ListHires(ctx context.Context, userID, page, pageSize int32) ([]domain.Hire, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.hireRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *hireService) CompleteHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error) {
	return s.closeHire(ctx, userID, hireID, domain.HireStatusCompleted)
}

func (s *hireService) CancelHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error) {
	return s.closeHire(ctx, userID, hireID, domain.HireStatusCancelled)
}

// closeHire moves an owned pending/confirmed hire to a terminal status
// and frees its cars.
func (s *hireService) closeHire(ctx context.Context, userID, hireID int32, to domain.HireStatus) (*domain.Hire, error) {
	hire, err := s.hireRepo.GetByIDForUser(ctx, hireID, userID)
	if err != nil {
		return nil, err
	}

	moved, err := s.hireRepo.UpdateStatus(ctx, hire.ID, []domain.HireStatus{domain.HireStatusPending, domain.HireStatusConfirmed}, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: hire %d is %s", domain.ErrHireStateConflict, hire.ID, hire.Status)
	}
	hire.Status = to

	releaseHireCars(ctx, s.carRepo, hire)
	return hire, nil
}

// releaseHireCars frees a hire's cars back to Available. Failures are
// logged per car and never abort the caller; the sweeper picks up
// anything left behind.
func releaseHireCars(ctx context.Context, carRepo repository.CarRepository, hire *domain.Hire) {
	for _, carID := range hire.CarIDs() {
		released, err := carRepo.UpdateAvailability(ctx, carID, []domain.CarAvailabilityStatus{domain.CarStatusBooked}, domain.CarStatusAvailable)
		if err != nil {
			logger.Error("failed to release car", "car_id", carID, "hire_id", hire.ID, "error", err)
			continue
		}
		if !released {
			logger.Debug("car was not booked at release time", "car_id", carID, "hire_id", hire.ID)
		}
	}
}
