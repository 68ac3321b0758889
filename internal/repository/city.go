package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

type CityRepository interface {
	FindByName(ctx context.Context, cityName string) (*model.City, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.City, error)
	Create(ctx context.Context, cityName string) (*model.City, error)
}

type cityRepo struct {
	db sqlxDB
}

func NewCityRepository(db *sqlx.DB) CityRepository {
	return &cityRepo{db: db}
}

func (r *cityRepo) FindByName(ctx context.Context, cityName string) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		SELECT * FROM cities WHERE city_name = $1
	`, cityName)
	return HandleNotFound(&city, err)
}

func (r *cityRepo) FindAll(ctx context.Context, limit, offset int) ([]model.City, error) {
	cities := []model.City{}
	err := r.db.SelectContext(ctx, &cities, `
		SELECT * FROM cities
		ORDER BY city_name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepo) Create(ctx context.Context, cityName string) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		INSERT INTO cities (city_name)
		VALUES ($1)
		RETURNING *
	`, cityName)
	if err != nil {
		return nil, err
	}
	return &city, nil
}
