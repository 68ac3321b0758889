package model

import (
	"time"
)

type College struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type City struct {
	ID        string    `db:"id" json:"id"`
	CityName  string    `db:"city_name" json:"cityName"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
