package domain

import "time"

type HireStatus string

const (
	HireStatusPending   HireStatus = "pending"
	HireStatusConfirmed HireStatus = "confirmed"
	HireStatusCompleted HireStatus = "completed"
	HireStatusEnded     HireStatus = "ended"
	HireStatusCancelled HireStatus = "cancelled"
	HireStatusFailed    HireStatus = "failed"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodMpesa PaymentMethod = "mpesa"
)

// Payment is embedded into Hire. TransactionID holds the gateway's
// CheckoutRequestID and is the join key for callback reconciliation;
// it stays empty for cash hires and for mpesa hires whose STK push
// never went out.
type Payment struct {
	Method        PaymentMethod `json:"method"`
	// Amount in whole Kenyan shillings.
	Amount        int64         `json:"amount"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Status        PaymentStatus `json:"status"`
	Receipt       string        `json:"receipt,omitempty"`
	PayerPhone    string        `json:"payer_phone,omitempty"`
}

type HireItem struct {
	ID          int32     `json:"id"`
	HireID      int32     `json:"hire_id"`
	CarID       int32     `json:"car_id"`
	Car         *Car      `json:"car,omitempty"` // populated on detail fetches
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PricePerDay int64     `json:"price_per_day"`
	TotalPrice  int64     `json:"total_price"`
}

type Hire struct {
	ID          int32      `json:"id"`
	UserID      int32      `json:"user_id"`
	Items       []HireItem `json:"items"`
	TotalAmount int64      `json:"total_amount"`
	Status      HireStatus `json:"status"`
	Payment     Payment    `json:"payment"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

// CarIDs returns the distinct car ids held by this hire's line items.
func (h *Hire) CarIDs() []int32 {
	seen := make(map[int32]bool, len(h.Items))
	ids := make([]int32, 0, len(h.Items))
	for _, item := range h.Items {
		if !seen[item.CarID] {
			seen[item.CarID] = true
			ids = append(ids, item.CarID)
		}
	}
	return ids
}
