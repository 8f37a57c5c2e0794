package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository"

	"github.com/lib/pq"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, brand, model, year, registration_number, fuel_type, transmission, seats, price_per_day, availability_status, pickup_location, image_url, created_on, updated_on`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.Year, &c.RegistrationNumber, &c.FuelType, &c.Transmission, &c.Seats, &c.PricePerDay, &c.AvailabilityStatus, &c.PickupLocation, &c.ImageURL, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format(time.RFC3339)
	c.UpdatedOn = updatedOn.Format(time.RFC3339)
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (brand, model, year, registration_number, fuel_type, transmission, seats, price_per_day, availability_status, pickup_location, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, car.Brand, car.Model, car.Year, car.RegistrationNumber, car.FuelType, car.Transmission, car.Seats, car.PricePerDay, car.AvailabilityStatus, car.PickupLocation, car.ImageURL, now, now).Scan(&car.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	return car, err
}

func (r *carRepository) List(ctx context.Context, status domain.CarAvailabilityStatus, page, pageSize int32) ([]domain.Car, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + carColumns + ` FROM cars`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE availability_status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *car)
	}
	return cars, count, rows.Err()
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, year=$3, registration_number=$4, fuel_type=$5, transmission=$6, seats=$7, price_per_day=$8, availability_status=$9, pickup_location=$10, image_url=$11, updated_on=$12 WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query, car.Brand, car.Model, car.Year, car.RegistrationNumber, car.FuelType, car.Transmission, car.Seats, car.PricePerDay, car.AvailabilityStatus, car.PickupLocation, car.ImageURL, time.Now(), car.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func (r *carRepository) UpdateAvailability(ctx context.Context, id int32, from []domain.CarAvailabilityStatus, to domain.CarAvailabilityStatus) (bool, error) {
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}
	query := `UPDATE cars SET availability_status = $1, updated_on = $2 WHERE id = $3 AND availability_status = ANY($4)`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, pq.Array(statuses))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
