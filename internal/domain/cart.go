package domain

import "time"

// CartItem is a staged car + date-range selection. Pricing is resolved
// from the car at checkout time, not stored on the cart.
type CartItem struct {
	ID        int32     `json:"id"`
	CartID    int32     `json:"cart_id"`
	CarID     int32     `json:"car_id"`
	Car       *Car      `json:"car,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type Cart struct {
	ID     int32      `json:"id"`
	UserID int32      `json:"user_id"`
	Items  []CartItem `json:"items"`
}
