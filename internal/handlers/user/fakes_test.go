package user_test

import (
	"context"
	"sync"

	"github.com/gocql/gocql"

	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/store"
)

// fakeUsers mirrors the store semantics: one cart line per product,
// AddCartItem increments or inserts. calls counts every store touch so tests
// can assert that validation happens first.
type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User
	carts map[gocql.UUID][]models.CartItem
	calls int
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{
		users: map[string]models.User{},
		carts: map[gocql.UUID][]models.CartItem{},
	}
	for _, u := range users {
		f.users[u.Email] = u
	}
	return f
}

func (f *fakeUsers) touch() {
	f.calls++
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	if _, ok := f.users[u.Email]; ok {
		return store.ErrDuplicate
	}
	f.users[u.Email] = *u
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) ByID(_ context.Context, id gocql.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) AddCartItem(_ context.Context, userID, productID gocql.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	cart := f.carts[userID]
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity += quantity
			f.carts[userID] = cart
			return nil
		}
	}
	f.carts[userID] = append(cart, models.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeUsers) Cart(_ context.Context, userID gocql.UUID) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	return f.carts[userID], nil
}

type fakeProducts struct {
	mu    sync.Mutex
	items map[gocql.UUID]models.Product
	calls int
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{items: map[gocql.UUID]models.Product{}}
	for _, p := range products {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Insert(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) All(context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Product
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) ByOwner(context.Context, string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProducts) ByID(_ context.Context, id gocql.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, p.ID)
	return nil
}

func (f *fakeUsers) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeProducts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
