package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"bazaar_back_end/internal/models"
)

const productColumns = `product_id, name, description, category, tags, price, stock, email, images, user_id, created_at, updated_at`

// ScyllaProducts persists products in the products keyspace. The
// products_by_owner table mirrors every row so the my-products query stays a
// single-partition read.
type ScyllaProducts struct {
	Session *gocql.Session
}

func NewScyllaProducts(session *gocql.Session) *ScyllaProducts {
	return &ScyllaProducts{Session: session}
}

func (s *ScyllaProducts) Insert(ctx context.Context, p *models.Product) error {
	if err := s.Session.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.Tags, p.Price, p.Stock, p.Email, p.Images, p.UserID, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.Session.Query(`INSERT INTO products_by_owner (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.Tags, p.Price, p.Stock, p.Email, p.Images, p.UserID, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaProducts) All(ctx context.Context) ([]models.Product, error) {
	iter := s.Session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()
	return scanProducts(iter)
}

func (s *ScyllaProducts) ByOwner(ctx context.Context, email string) ([]models.Product, error) {
	iter := s.Session.Query(`SELECT `+productColumns+` FROM products_by_owner WHERE email = ?`, email).
		WithContext(ctx).Iter()
	return scanProducts(iter)
}

func (s *ScyllaProducts) ByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var p models.Product
	err := s.Session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Tags, &p.Price, &p.Stock, &p.Email, &p.Images, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites the full row; CQL inserts are upserts so both tables take
// the same statement shape as Insert. When the owner email changed, the
// mirror row filed under the old email has to go or my-products would keep
// serving the stale record.
func (s *ScyllaProducts) Update(ctx context.Context, p *models.Product, prevEmail string) error {
	if err := s.Insert(ctx, p); err != nil {
		return err
	}
	if prevEmail == p.Email {
		return nil
	}
	return s.Session.Query(`DELETE FROM products_by_owner WHERE email = ? AND product_id = ?`, prevEmail, p.ID).
		WithContext(ctx).Exec()
}

func (s *ScyllaProducts) Delete(ctx context.Context, p *models.Product) error {
	if err := s.Session.Query(`DELETE FROM products WHERE product_id = ?`, p.ID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.Session.Query(`DELETE FROM products_by_owner WHERE email = ? AND product_id = ?`, p.Email, p.ID).
		WithContext(ctx).Exec()
}

func scanProducts(iter *gocql.Iter) ([]models.Product, error) {
	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Tags, &p.Price, &p.Stock, &p.Email, &p.Images, &p.UserID, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}
