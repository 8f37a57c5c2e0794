package service

import (
	"context"
	"fmt"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository"
)

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) AddCar(ctx context.Context, car *domain.Car) error {
	if car.Brand == "" || car.Model == "" {
		return fmt.Errorf("brand and model are required")
	}
	if car.RegistrationNumber == "" {
		return fmt.Errorf("registration number is required")
	}
	if car.PricePerDay <= 0 {
		return fmt.Errorf("price per day must be positive")
	}
	if car.AvailabilityStatus == "" {
		car.AvailabilityStatus = domain.CarStatusAvailable
	}
	return s.carRepo.Create(ctx, car)
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) ListCars(ctx context.Context, status domain.CarAvailabilityStatus, page, pageSize int32) ([]domain.Car, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.carRepo.List(ctx, status, page, pageSize)
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	return s.carRepo.Update(ctx, car)
}

func (s *carService) DeleteCar(ctx context.Context, id int32) error {
	return s.carRepo.Delete(ctx, id)
}
