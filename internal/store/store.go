// Package store is the data-store boundary: interfaces over the ScyllaDB
// tables so handlers never touch a session directly.
package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"bazaar_back_end/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	All(ctx context.Context) ([]models.Product, error)
	ByOwner(ctx context.Context, email string) ([]models.Product, error)
	ByID(ctx context.Context, id gocql.UUID) (*models.Product, error)
	// Update rewrites the product; prevEmail is the owner before the update
	// so the owner mirror drops the old row when ownership moved.
	Update(ctx context.Context, p *models.Product, prevEmail string) error
	Delete(ctx context.Context, p *models.Product) error
}

type UserStore interface {
	// Insert persists a new user; ErrDuplicate when the email is taken.
	Insert(ctx context.Context, u *models.User) error
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id gocql.UUID) (*models.User, error)
	// AddCartItem bumps the quantity for (user, product) atomically,
	// creating the line when absent.
	AddCartItem(ctx context.Context, userID, productID gocql.UUID, quantity int) error
	Cart(ctx context.Context, userID gocql.UUID) ([]models.CartItem, error)
}
