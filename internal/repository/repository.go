package repository

import (
	"context"
	"time"

	"jeffika-cabs-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	List(ctx context.Context, status domain.CarAvailabilityStatus, page, pageSize int32) ([]domain.Car, int32, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error

	// UpdateAvailability performs a match-and-set transition. It reports
	// whether a row actually moved from one of the expected statuses.
	UpdateAvailability(ctx context.Context, id int32, from []domain.CarAvailabilityStatus, to domain.CarAvailabilityStatus) (bool, error)
}

type HireRepository interface {
	// Create persists the hire and its line items in one transaction and
	// fills in the generated ids.
	Create(ctx context.Context, hire *domain.Hire) error
	GetByID(ctx context.Context, id int32) (*domain.Hire, error)
	GetByIDForUser(ctx context.Context, id, userID int32) (*domain.Hire, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Hire, int32, error)

	// SetTransactionID stores the gateway reference on a freshly created hire.
	SetTransactionID(ctx context.Context, id int32, transactionID string) error

	// UpdateStatus is a conditional transition: the hire moves to the target
	// status only if its current status is one of from. Reports whether a
	// row was updated.
	UpdateStatus(ctx context.Context, id int32, from []domain.HireStatus, to domain.HireStatus) (bool, error)

	// ConfirmPaymentByTransactionID applies a successful payment callback in
	// a single conditional update keyed on the embedded transaction id.
	// Replays against an already-confirmed hire re-apply the metadata
	// (last write wins). Returns the updated hire, or ErrHireNotFound when
	// no record carries the transaction id in an eligible status.
	ConfirmPaymentByTransactionID(ctx context.Context, transactionID, receipt, payerPhone string, amount int64) (*domain.Hire, error)

	// FailPaymentByTransactionID applies a failed/cancelled payment callback
	// the same way.
	FailPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Hire, error)

	// ListExpired returns hires whose any line item's end date is at or
	// before now and whose status is still pending or confirmed.
	ListExpired(ctx context.Context, now time.Time) ([]domain.Hire, error)
}

type CartRepository interface {
	GetByUser(ctx context.Context, userID int32) (*domain.Cart, error)
	AddItem(ctx context.Context, userID int32, item *domain.CartItem) error
	RemoveItem(ctx context.Context, userID, carID int32) error
	Clear(ctx context.Context, userID int32) error
}
