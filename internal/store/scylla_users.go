package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"bazaar_back_end/internal/models"
)

// ScyllaUsers persists users in the users keyspace. users_by_email mirrors the
// row for the email lookups; cart_items holds one counter row per
// (user, product) pair, which is what makes add-to-cart an atomic
// increment-or-insert.
type ScyllaUsers struct {
	Session *gocql.Session
}

func NewScyllaUsers(session *gocql.Session) *ScyllaUsers {
	return &ScyllaUsers{Session: session}
}

func (s *ScyllaUsers) Insert(ctx context.Context, u *models.User) error {
	applied, err := s.Session.Query(
		`INSERT INTO users_by_email (email, user_id, name, password, created_at) VALUES (?, ?, ?, ?, ?) IF NOT EXISTS`,
		u.Email, u.ID, u.Name, u.Password, u.CreatedAt).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrDuplicate
	}
	return s.Session.Query(
		`INSERT INTO users (user_id, email, name, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Password, u.CreatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.Session.Query(
		`SELECT email, user_id, name, password, created_at FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).
		Scan(&u.Email, &u.ID, &u.Name, &u.Password, &u.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUsers) ByID(ctx context.Context, id gocql.UUID) (*models.User, error) {
	var u models.User
	err := s.Session.Query(
		`SELECT user_id, email, name, password, created_at FROM users WHERE user_id = ?`, id).
		WithContext(ctx).
		Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUsers) AddCartItem(ctx context.Context, userID, productID gocql.UUID, quantity int) error {
	return s.Session.Query(
		`UPDATE cart_items SET quantity = quantity + ? WHERE user_id = ? AND product_id = ?`,
		int64(quantity), userID, productID).
		WithContext(ctx).Exec()
}

func (s *ScyllaUsers) Cart(ctx context.Context, userID gocql.UUID) ([]models.CartItem, error) {
	iter := s.Session.Query(
		`SELECT product_id, quantity FROM cart_items WHERE user_id = ?`, userID).
		WithContext(ctx).Iter()

	var items []models.CartItem
	var productID gocql.UUID
	var quantity int64
	for iter.Scan(&productID, &quantity) {
		items = append(items, models.CartItem{ProductID: productID, Quantity: int(quantity)})
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}
