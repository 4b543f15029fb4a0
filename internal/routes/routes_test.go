package routes_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"

	"bazaar_back_end/internal/handlers/product"
	"bazaar_back_end/internal/handlers/user"
	"bazaar_back_end/internal/middleware"
	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/routes"
	"bazaar_back_end/internal/services"
	"bazaar_back_end/internal/store"
)

type emptyProducts struct{}

func (emptyProducts) Insert(context.Context, *models.Product) error { return nil }
func (emptyProducts) All(context.Context) ([]models.Product, error) { return nil, nil }
func (emptyProducts) ByOwner(context.Context, string) ([]models.Product, error) {
	return nil, nil
}
func (emptyProducts) ByID(context.Context, gocql.UUID) (*models.Product, error) {
	return nil, store.ErrNotFound
}
func (emptyProducts) Update(context.Context, *models.Product, string) error { return nil }
func (emptyProducts) Delete(context.Context, *models.Product) error { return nil }

type emptyUsers struct{}

func (emptyUsers) Insert(context.Context, *models.User) error { return nil }
func (emptyUsers) ByEmail(context.Context, string) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (emptyUsers) ByID(context.Context, gocql.UUID) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (emptyUsers) AddCartItem(context.Context, gocql.UUID, gocql.UUID, int) error { return nil }
func (emptyUsers) Cart(context.Context, gocql.UUID) ([]models.CartItem, error)    { return nil, nil }

type noFiles struct{}

func (noFiles) Save(context.Context, *multipart.FileHeader) (string, error) {
	return "", services.ErrObjectNotFound
}
func (noFiles) Open(context.Context, string) (io.ReadCloser, int64, string, error) {
	return nil, 0, "", services.ErrObjectNotFound
}
func (noFiles) Remove(context.Context, string) error { return nil }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := emptyUsers{}
	productHandler := &product.Handler{Products: emptyProducts{}, Users: users, Files: noFiles{}}
	userHandler := &user.Handler{Users: users, Products: emptyProducts{}, Secret: "secret"}

	r := gin.New()
	routes.Register(r, productHandler, userHandler,
		middleware.Authenticated(users, "secret"),
		middleware.LoginRateLimit(nil))
	return r
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWelcomeRoute(t *testing.T) {
	rec := do(newRouter(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to backend", rec.Body.String())
}

func TestListRouteReturnsEmptyCatalog(t *testing.T) {
	rec := do(newRouter(), http.MethodGet, "/products/get-products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products": []}`, rec.Body.String())
}

func TestProtectedRouteRequiresLogin(t *testing.T) {
	rec := do(newRouter(), http.MethodGet, "/user/getuser", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartRouteValidatesInput(t *testing.T) {
	rec := do(newRouter(), http.MethodPost, "/products/cart", `{"userId":"a@b.c","productId":"nope","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageRouteCoexistsWithStaticSiblings(t *testing.T) {
	rec := do(newRouter(), http.MethodGet, "/products/12345.jpg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
