package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"jeffika-cabs-backend/internal/config"
	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/jobs"
)

// MockHireRepo
type MockHireRepo struct {
	mock.Mock
}

func (m *MockHireRepo) Create(ctx context.Context, hire *domain.Hire) error {
	args := m.Called(ctx, hire)
	return args.Error(0)
}
func (m *MockHireRepo) GetByID(ctx context.Context, id int32) (*domain.Hire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hire), args.Error(1)
}
func (m *MockHireRepo) GetByIDForUser(ctx context.Context, id, userID int32) (*domain.Hire, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hire), args.Error(1)
}
func (m *MockHireRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Hire, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Hire), args.Get(1).(int32), args.Error(2)
}
func (m *MockHireRepo) SetTransactionID(ctx context.Context, id int32, transactionID string) error {
	args := m.Called(ctx, id, transactionID)
	return args.Error(0)
}
func (m *MockHireRepo) UpdateStatus(ctx context.Context, id int32, from []domain.HireStatus, to domain.HireStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockHireRepo) ConfirmPaymentByTransactionID(ctx context.Context, transactionID, receipt, payerPhone string, amount int64) (*domain.Hire, error) {
	args := m.Called(ctx, transactionID, receipt, payerPhone, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hire), args.Error(1)
}
func (m *MockHireRepo) FailPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Hire, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hire), args.Error(1)
}
func (m *MockHireRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.Hire, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Hire), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) List(ctx context.Context, status domain.CarAvailabilityStatus, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) UpdateAvailability(ctx context.Context, id int32, from []domain.CarAvailabilityStatus, to domain.CarAvailabilityStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func TestReleaseExpiredHires(t *testing.T) {
	hireRepo := new(MockHireRepo)
	carRepo := new(MockCarRepo)
	runner := jobs.NewJobRunner(hireRepo, carRepo, &config.Config{})

	expired := []domain.Hire{
		{ID: 1, Status: domain.HireStatusConfirmed, Items: []domain.HireItem{{CarID: 5}}},
		{ID: 2, Status: domain.HireStatusPending, Items: []domain.HireItem{{CarID: 8}}},
	}

	hireRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(expired, nil)
	hireRepo.On("UpdateStatus", mock.Anything, int32(1),
		[]domain.HireStatus{domain.HireStatusPending, domain.HireStatusConfirmed},
		domain.HireStatusEnded).Return(true, nil)
	hireRepo.On("UpdateStatus", mock.Anything, int32(2),
		[]domain.HireStatus{domain.HireStatusPending, domain.HireStatusConfirmed},
		domain.HireStatusEnded).Return(true, nil)
	carRepo.On("UpdateAvailability", mock.Anything, int32(5),
		[]domain.CarAvailabilityStatus{domain.CarStatusBooked}, domain.CarStatusAvailable).Return(true, nil)
	carRepo.On("UpdateAvailability", mock.Anything, int32(8),
		[]domain.CarAvailabilityStatus{domain.CarStatusBooked}, domain.CarStatusAvailable).Return(true, nil)

	runner.ReleaseExpiredHires()

	hireRepo.AssertExpectations(t)
	carRepo.AssertExpectations(t)
}

func TestReleaseExpiredHires_OneFailureDoesNotAbortBatch(t *testing.T) {
	hireRepo := new(MockHireRepo)
	carRepo := new(MockCarRepo)
	runner := jobs.NewJobRunner(hireRepo, carRepo, &config.Config{})

	expired := []domain.Hire{
		{ID: 1, Status: domain.HireStatusConfirmed, Items: []domain.HireItem{{CarID: 5}}},
		{ID: 2, Status: domain.HireStatusConfirmed, Items: []domain.HireItem{{CarID: 8}}},
	}

	hireRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(expired, nil)
	hireRepo.On("UpdateStatus", mock.Anything, int32(1), mock.Anything, domain.HireStatusEnded).
		Return(false, errors.New("deadlock detected"))
	hireRepo.On("UpdateStatus", mock.Anything, int32(2), mock.Anything, domain.HireStatusEnded).
		Return(true, nil)
	carRepo.On("UpdateAvailability", mock.Anything, int32(8), mock.Anything, domain.CarStatusAvailable).
		Return(true, nil)

	runner.ReleaseExpiredHires()

	// hire 1 failed, hire 2 still got released
	carRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, int32(5), mock.Anything, mock.Anything)
	carRepo.AssertCalled(t, "UpdateAvailability", mock.Anything, int32(8), mock.Anything, domain.CarStatusAvailable)
}

func TestReleaseExpiredHires_SkipsAlreadyClosed(t *testing.T) {
	hireRepo := new(MockHireRepo)
	carRepo := new(MockCarRepo)
	runner := jobs.NewJobRunner(hireRepo, carRepo, &config.Config{})

	expired := []domain.Hire{
		{ID: 1, Status: domain.HireStatusPending, Items: []domain.HireItem{{CarID: 5}}},
	}

	hireRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(expired, nil)
	// a cancellation won the race between listing and updating
	hireRepo.On("UpdateStatus", mock.Anything, int32(1), mock.Anything, domain.HireStatusEnded).
		Return(false, nil)

	runner.ReleaseExpiredHires()

	carRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReleaseExpiredHires_EmptyBatch(t *testing.T) {
	hireRepo := new(MockHireRepo)
	carRepo := new(MockCarRepo)
	runner := jobs.NewJobRunner(hireRepo, carRepo, &config.Config{})

	hireRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Hire{}, nil)

	runner.ReleaseExpiredHires()

	hireRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
