package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// ensureCart lazily creates the per-user cart row on first access.
func (r *cartRepository) ensureCart(ctx context.Context, userID int32) (int32, error) {
	var cartID int32
	query := `INSERT INTO carts (user_id) VALUES ($1)
	          ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cartID)
	return cartID, err
}

func (r *cartRepository) GetByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart := &domain.Cart{UserID: userID}
	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cart.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT i.id, i.cart_id, i.car_id, i.start_date, i.end_date,
	                 c.id, c.brand, c.model, c.year, c.registration_number, c.price_per_day, c.availability_status
	          FROM cart_items i JOIN cars c ON c.id = i.car_id
	          WHERE i.cart_id = $1 ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		car := &domain.Car{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.CarID, &item.StartDate, &item.EndDate,
			&car.ID, &car.Brand, &car.Model, &car.Year, &car.RegistrationNumber, &car.PricePerDay, &car.AvailabilityStatus); err != nil {
			return nil, err
		}
		item.Car = car
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

func (r *cartRepository) AddItem(ctx context.Context, userID int32, item *domain.CartItem) error {
	cartID, err := r.ensureCart(ctx, userID)
	if err != nil {
		return err
	}
	item.CartID = cartID
	query := `INSERT INTO cart_items (cart_id, car_id, start_date, end_date) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, cartID, item.CarID, item.StartDate, item.EndDate).Scan(&item.ID)
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, carID int32) error {
	query := `DELETE FROM cart_items WHERE car_id = $1 AND cart_id = (SELECT id FROM carts WHERE user_id = $2)`
	_, err := r.db.ExecContext(ctx, query, carID, userID)
	return err
}

func (r *cartRepository) Clear(ctx context.Context, userID int32) error {
	query := `DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
