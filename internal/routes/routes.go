package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bazaar_back_end/internal/handlers/product"
	"bazaar_back_end/internal/handlers/user"
	"bazaar_back_end/internal/middleware"
)

// Register wires the route table. The auth and login-throttle middlewares are
// passed in so the server and the tests assemble the same table.
func Register(r *gin.Engine, products *product.Handler, users *user.Handler, authenticated, loginLimit gin.HandlerFunc) {
	r.Use(middleware.ErrorHandler())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to backend")
	})

	p := r.Group("/products")
	{
		p.POST("/create-product", products.Create)
		p.GET("/get-products", products.List)
		p.GET("/my-products", products.MyProducts)
		p.GET("/search", products.Search)
		p.GET("/product/:id", products.Get)
		p.PUT("/update-product/:id", products.Update)
		p.DELETE("/delete-product/:id", products.Delete)

		p.POST("/cart", users.AddToCart)
		p.GET("/cartproducts", users.GetCart)

		// Uploaded images are served back under their recorded paths.
		p.GET("/:filename", products.ServeImage)
	}

	u := r.Group("/user")
	{
		u.POST("/create-user", users.Register)
		u.POST("/login-user", loginLimit, users.Login)
		u.GET("/logout", users.Logout)
		u.GET("/getuser", authenticated, users.Me)
	}
}
