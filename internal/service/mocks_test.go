package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/mpesa"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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

// MockCartRepo
type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartRepo) AddItem(ctx context.Context, userID int32, item *domain.CartItem) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}
func (m *MockCartRepo) RemoveItem(ctx context.Context, userID, carID int32) error {
	args := m.Called(ctx, userID, carID)
	return args.Error(0)
}
func (m *MockCartRepo) Clear(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) STKPush(ctx context.Context, amount int64, phone, hireRef string) (*mpesa.STKPushResponse, error) {
	args := m.Called(ctx, amount, phone, hireRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mpesa.STKPushResponse), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendHireReceipt(ctx context.Context, toEmail, toName string, hire *domain.Hire, pdf []byte) error {
	args := m.Called(ctx, toEmail, toName, hire, pdf)
	return args.Error(0)
}
