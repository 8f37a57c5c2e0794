package postgres

import (
	"database/sql"

	"jeffika-cabs-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.HireRepository
	repository.CartRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:             db,
		UserRepository: NewUserRepository(db),
		CarRepository:  NewCarRepository(db),
		HireRepository: NewHireRepository(db),
		CartRepository: NewCartRepository(db),
	}
}
