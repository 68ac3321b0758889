package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

type CollegeRepository interface {
	FindByNameAndCity(ctx context.Context, name, city string) (*model.College, error)
	FindAll(ctx context.Context, city string, limit, offset int) ([]model.College, error)
	Create(ctx context.Context, name, city string) (*model.College, error)
}

type collegeRepo struct {
	db sqlxDB
}

func NewCollegeRepository(db *sqlx.DB) CollegeRepository {
	return &collegeRepo{db: db}
}

func (r *collegeRepo) FindByNameAndCity(ctx context.Context, name, city string) (*model.College, error) {
	var college model.College
	err := r.db.GetContext(ctx, &college, `
		SELECT * FROM colleges WHERE name = $1 AND city = $2
	`, name, city)
	return HandleNotFound(&college, err)
}

// FindAll lists colleges, optionally restricted to one city.
func (r *collegeRepo) FindAll(ctx context.Context, city string, limit, offset int) ([]model.College, error) {
	colleges := []model.College{}
	err := r.db.SelectContext(ctx, &colleges, `
		SELECT * FROM colleges
		WHERE ($1 = '' OR city = $1)
		ORDER BY city, name
		LIMIT $2 OFFSET $3
	`, city, limit, offset)
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

func (r *collegeRepo) Create(ctx context.Context, name, city string) (*model.College, error) {
	var college model.College
	err := r.db.GetContext(ctx, &college, `
		INSERT INTO colleges (name, city)
		VALUES ($1, $2)
		RETURNING *
	`, name, city)
	if err != nil {
		return nil, err
	}
	return &college, nil
}
