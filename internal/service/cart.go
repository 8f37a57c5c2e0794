package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository"
)

type cartService struct {
	cartRepo repository.CartRepository
	carRepo  repository.CarRepository
}

func NewCartService(cartRepo repository.CartRepository, carRepo repository.CarRepository) CartService {
	return &cartService{cartRepo: cartRepo, carRepo: carRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		// A user without a cart row simply has an empty cart.
		return &domain.Cart{UserID: userID}, nil
	}
	return cart, err
}

func (s *cartService) AddItem(ctx context.Context, userID, carID int32, startDate, endDate time.Time) (*domain.CartItem, error) {
	if !endDate.After(startDate) {
		return nil, domain.ErrInvalidDateRange
	}
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("resolving car %d: %w", carID, err)
	}

	item := &domain.CartItem{
		CarID:     car.ID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.cartRepo.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}
	item.Car = car
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, carID int32) error {
	return s.cartRepo.RemoveItem(ctx, userID, carID)
}
