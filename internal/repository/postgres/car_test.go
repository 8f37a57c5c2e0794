package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository/postgres"
)

var carColumns = []string{"id", "brand", "model", "year", "registration_number", "fuel_type", "transmission", "seats", "price_per_day", "availability_status", "pickup_location", "image_url", "created_on", "updated_on"}

func carRow(id int32, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(carColumns).
		AddRow(id, "Toyota", "Axio", 2020, "KDA 123A", "Petrol", "Automatic", 5, 1000, status, "Nairobi CBD", "", now, now)
}

func TestCarRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	car := &domain.Car{
		Brand:              "Toyota",
		Model:              "Axio",
		Year:               2020,
		RegistrationNumber: "KDA 123A",
		FuelType:           domain.CarFuelPetrol,
		Transmission:       domain.CarTransmissionAutomatic,
		Seats:              5,
		PricePerDay:        1000,
		AvailabilityStatus: domain.CarStatusAvailable,
		PickupLocation:     "Nairobi CBD",
	}

	mock.ExpectQuery("INSERT INTO cars").
		WithArgs(car.Brand, car.Model, car.Year, car.RegistrationNumber, car.FuelType, car.Transmission,
			car.Seats, car.PricePerDay, car.AvailabilityStatus, car.PickupLocation, car.ImageURL,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	err = repo.Create(ctx, car)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), car.ID)
}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE id = \\$1").
			WithArgs(int32(5)).
			WillReturnRows(carRow(5, "Available"))

		car, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), car.ID)
		assert.Equal(t, int64(1000), car.PricePerDay)
		assert.Equal(t, domain.CarStatusAvailable, car.AvailabilityStatus)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(carColumns))

		car, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
		assert.Nil(t, car)
	})
}

func TestCarRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Filtered By Status", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(domain.CarStatusAvailable).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE availability_status = \\$1").
			WithArgs(domain.CarStatusAvailable, int32(20), int32(0)).
			WillReturnRows(carRow(5, "Available"))

		cars, total, err := repo.List(ctx, domain.CarStatusAvailable, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, cars, 1)
	})

	t.Run("Unfiltered", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT (.+) FROM cars").
			WithArgs(int32(20), int32(0)).
			WillReturnRows(carRow(5, "Available").AddRow(6, "Honda", "Fit", 2019, "KDB 456B", "Petrol", "CVT", 5, 900, "Booked", "Westlands", "", time.Now(), time.Now()))

		cars, total, err := repo.List(ctx, "", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, cars, 2)
	})
}

func TestCarRepository_UpdateAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Moved", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET availability_status = \\$1").
			WithArgs(string(domain.CarStatusBooked), sqlmock.AnyArg(), int32(5), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		moved, err := repo.UpdateAvailability(ctx, 5,
			[]domain.CarAvailabilityStatus{domain.CarStatusAvailable}, domain.CarStatusBooked)
		assert.NoError(t, err)
		assert.True(t, moved)
	})

	t.Run("Status Did Not Match", func(t *testing.T) {
		// car was already booked by a competing hire
		mock.ExpectExec("UPDATE cars SET availability_status = \\$1").
			WithArgs(string(domain.CarStatusBooked), sqlmock.AnyArg(), int32(5), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		moved, err := repo.UpdateAvailability(ctx, 5,
			[]domain.CarAvailabilityStatus{domain.CarStatusAvailable}, domain.CarStatusBooked)
		assert.NoError(t, err)
		assert.False(t, moved)
	})
}

func TestCarRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cars WHERE id = \\$1").
			WithArgs(int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 5))
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cars WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrCarNotFound)
	})
}
