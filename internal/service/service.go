package service

import (
	"context"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/mpesa"
)

// PaymentGateway abstracts the mobile-money gateway client so the hire
// workflow can be tested without network calls.
type PaymentGateway interface {
	STKPush(ctx context.Context, amount int64, phone, hireRef string) (*mpesa.STKPushResponse, error)
}

type CreateHireItemInput struct {
	CarID     int32
	StartDate time.Time
	EndDate   time.Time
}

type CreateHireInput struct {
	Items         []CreateHireItemInput
	PaymentMethod domain.PaymentMethod
	Phone         string // optional; falls back to the user's profile phone
}

// CreateHireResult reports the outcome of a checkout. AwaitingPayment is
// true when an STK push went out and the hire stays pending until the
// gateway callback lands. A hire with an empty transaction id means the
// push never went out; callers retry payment, they do not recreate the
// hire.
type CreateHireResult struct {
	Hire            *domain.Hire
	AwaitingPayment bool
	CustomerMessage string
}

type HireService interface {
	// CreateHire validates the request, persists a pending hire, clears
	// the originating cart, places inventory holds and, for mpesa,
	// initiates the payment request. On gateway failure the persisted
	// hire is returned alongside the error.
	CreateHire(ctx context.Context, userID int32, in CreateHireInput) (*CreateHireResult, error)
	GetHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error)
	ListHires(ctx context.Context, userID, page, pageSize int32) ([]domain.Hire, int32, error)
	CompleteHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error)
	CancelHire(ctx context.Context, userID, hireID int32) (*domain.Hire, error)
}

// PaymentService reconciles asynchronous gateway callbacks against hire
// records. A lookup miss is not an error: it is logged and counted, and
// the HTTP layer acknowledges the gateway regardless.
type PaymentService interface {
	ProcessCallback(ctx context.Context, cb *mpesa.STKCallback) error
}

type CarService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	ListCars(ctx context.Context, status domain.CarAvailabilityStatus, page, pageSize int32) ([]domain.Car, int32, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int32) error
}

type CartService interface {
	GetCart(ctx context.Context, userID int32) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, carID int32, startDate, endDate time.Time) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, carID int32) error
}

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                             // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type EmailService interface {
	SendHireReceipt(ctx context.Context, toEmail, toName string, hire *domain.Hire, pdf []byte) error
}

type ReceiptService interface {
	// SendReceipt renders the hire receipt PDF and emails it to the
	// owning user, with an admin copy when one is configured.
	SendReceipt(ctx context.Context, userID, hireID int32) (string, error) // returns attachment filename
	BuildReceiptPDF(hire *domain.Hire, user *domain.User) ([]byte, error)
}
