package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"bazaar_back_end/internal/apperr"
	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/store"
)

// Quantity stays a json.Number through binding so a fractional value gets the
// quantity rule's message instead of failing the whole body.
type addToCartInput struct {
	UserID    string      `json:"userId"`
	ProductID string      `json:"productId"`
	Quantity  json.Number `json:"quantity"`
}

// AddToCart handles POST /products/cart. The cart line for the product is
// incremented atomically at the store, so repeated adds accumulate and
// concurrent adds cannot lose an increment. Deliberately not idempotent.
func (h *Handler) AddToCart(c *gin.Context) {
	var in addToCartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperr.Validationf("Request body is missing or empty!"))
		return
	}

	if in.UserID == "" {
		c.Error(apperr.Validationf("Please provide a valid userId!"))
		return
	}
	// Reject malformed product references before touching the store.
	productID, err := uuid.Parse(in.ProductID)
	if err != nil {
		c.Error(apperr.Validationf("Invalid productId!"))
		return
	}
	quantity, err := strconv.Atoi(in.Quantity.String())
	if err != nil || quantity < 1 {
		c.Error(apperr.Validationf("Quantity must be at least 1!"))
		return
	}

	ctx := c.Request.Context()
	u, err := h.Users.ByEmail(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apperr.NotFoundf("User not found!"))
			return
		}
		c.Error(err)
		return
	}

	pid := gocql.UUID(productID)
	if _, err := h.Products.ByID(ctx, pid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apperr.NotFoundf("Product not found!"))
			return
		}
		c.Error(err)
		return
	}

	if err := h.Users.AddCartItem(ctx, u.ID, pid, quantity); err != nil {
		c.Error(err)
		return
	}

	cart, err := h.Users.Cart(ctx, u.ID)
	if err != nil {
		c.Error(err)
		return
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	u.Cart = cart

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart successfully!",
		"user":    u,
	})
}

// GetCart handles GET /products/cartproducts?email=, resolving every cart
// line's product reference into the full record. A line whose product has
// been deleted resolves to null rather than being dropped.
func (h *Handler) GetCart(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperr.Validationf("Please provide a valid email address!"))
		return
	}

	ctx := c.Request.Context()
	u, err := h.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apperr.NotFoundf("User not found!"))
			return
		}
		c.Error(err)
		return
	}

	items, err := h.Users.Cart(ctx, u.ID)
	if err != nil {
		c.Error(err)
		return
	}

	resolved := make([]models.ResolvedCartItem, 0, len(items))
	for _, item := range items {
		entry := models.ResolvedCartItem{Quantity: item.Quantity}
		p, err := h.Products.ByID(ctx, item.ProductID)
		switch {
		case err == nil:
			entry.Product = p
		case errors.Is(err, store.ErrNotFound):
			// dangling reference, keep the line with a null product
		default:
			c.Error(err)
			return
		}
		resolved = append(resolved, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart products fetched successfully!",
		"cart":    resolved,
	})
}
