package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Product is a catalog item owned by the seller whose email it records.
// Images hold the serving paths (/products/<object>) of the uploaded files.
type Product struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Email       string     `json:"email"`
	Images      []string   `json:"images"`
	UserID      gocql.UUID `json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
