package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"bazaar_back_end/internal/apperr"
	"bazaar_back_end/internal/middleware"
	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/store"
	"bazaar_back_end/internal/utils"
)

const cookieMaxAge = 24 * 60 * 60 // matches the token lifetime

// Handler serves the /user routes and the cart operations.
type Handler struct {
	Users    store.UserStore
	Products store.ProductStore
	Secret   string
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /user/create-user. A taken email is a conflict, not a
// not-found.
func (h *Handler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperr.Validationf("Request body is missing or empty!"))
		return
	}

	var errs []string
	if in.Name == "" {
		errs = append(errs, "Please enter your name!")
	}
	if in.Email == "" {
		errs = append(errs, "Please enter a valid email address!")
	}
	if in.Password == "" {
		errs = append(errs, "Please enter a password!")
	}
	if len(errs) > 0 {
		c.Error(apperr.Validationf(errs...))
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		c.Error(err)
		return
	}

	u := models.User{
		ID:        gocql.TimeUUID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Users.Insert(c.Request.Context(), &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.Error(apperr.Duplicate("email"))
			return
		}
		c.Error(err)
		return
	}

	if err := h.setSessionCookie(c, u); err != nil {
		c.Error(err)
		return
	}
	u.Cart = []models.CartItem{}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully!",
		"user":    u,
	})
}

// Login handles POST /user/login-user.
func (h *Handler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperr.Validationf("Request body is missing or empty!"))
		return
	}

	u, err := h.Users.ByEmail(c.Request.Context(), in.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.Error(err)
		return
	}
	if err != nil || !utils.VerifyPassword(in.Password, u.Password) {
		c.Error(apperr.Authf("Invalid email or password"))
		return
	}

	if err := h.setSessionCookie(c, *u); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully!",
		"user":    u,
	})
}

// Logout handles GET /user/logout by expiring the cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully!"})
}

// Me handles GET /user/getuser; the auth middleware has already resolved the
// user from the cookie.
func (h *Handler) Me(c *gin.Context) {
	v, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		c.Error(apperr.Authf("Please login to access this resource"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": v})
}

func (h *Handler) setSessionCookie(c *gin.Context, u models.User) error {
	token, err := utils.GenerateJWT(u, h.Secret)
	if err != nil {
		return err
	}
	c.SetCookie("token", token, cookieMaxAge, "/", "", false, true)
	return nil
}
