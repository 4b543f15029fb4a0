package product_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/gocql/gocql"

	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/services"
	"bazaar_back_end/internal/store"
)

// fakeProducts keeps the owner mirror as its own map, like the real store
// keeps products_by_owner as its own table, so stale mirror rows are
// observable in tests.
type fakeProducts struct {
	mu      sync.Mutex
	items   map[gocql.UUID]models.Product
	byOwner map[string]map[gocql.UUID]models.Product
	order   []gocql.UUID
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{
		items:   map[gocql.UUID]models.Product{},
		byOwner: map[string]map[gocql.UUID]models.Product{},
	}
}

func (f *fakeProducts) mirror(p models.Product) {
	if f.byOwner[p.Email] == nil {
		f.byOwner[p.Email] = map[gocql.UUID]models.Product{}
	}
	f.byOwner[p.Email][p.ID] = p
}

func (f *fakeProducts) Insert(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.items[p.ID] = *p
	f.mirror(*p)
	return nil
}

func (f *fakeProducts) All(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeProducts) ByOwner(_ context.Context, email string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range f.order {
		if p, ok := f.byOwner[email][id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ByID(_ context.Context, id gocql.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product, prevEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[p.ID] = *p
	f.mirror(*p)
	if prevEmail != p.Email {
		delete(f.byOwner[prevEmail], p.ID)
	}
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, p.ID)
	delete(f.byOwner[p.Email], p.ID)
	for i, id := range f.order {
		if id == p.ID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return store.ErrDuplicate
	}
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) ByID(_ context.Context, id gocql.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) AddCartItem(context.Context, gocql.UUID, gocql.UUID, int) error {
	return nil
}

func (f *fakeUsers) Cart(context.Context, gocql.UUID) ([]models.CartItem, error) {
	return nil, nil
}

type fakeFiles struct {
	mu    sync.Mutex
	saved map[string][]byte
	n     int
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: map[string][]byte{}}
}

func (f *fakeFiles) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	name := fmt.Sprintf("img-%d.jpg", f.n)
	f.saved[name] = data
	return "/products/" + name, nil
}

func (f *fakeFiles) Open(_ context.Context, object string) (io.ReadCloser, int64, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.saved[object]
	if !ok {
		return nil, 0, "", services.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), "image/jpeg", nil
}

func (f *fakeFiles) Remove(_ context.Context, object string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, object)
	return nil
}
