package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"bazaar_back_end/internal/config"
	"bazaar_back_end/internal/database"
	"bazaar_back_end/internal/handlers/product"
	"bazaar_back_end/internal/handlers/user"
	"bazaar_back_end/internal/middleware"
	"bazaar_back_end/internal/routes"
	"bazaar_back_end/internal/services"
	"bazaar_back_end/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	productStore := store.NewScyllaProducts(db.Products)
	userStore := store.NewScyllaUsers(db.Users)

	var index services.ProductIndex
	if db.Elastic != nil {
		index = services.NewElasticIndex(db.Elastic)
	}

	productHandler := &product.Handler{
		Products: productStore,
		Users:    userStore,
		Files:    services.NewMinioStore(db.MinIO, cfg.MinioBucket),
		Index:    index,
		Cache:    db.Redis,
	}
	userHandler := &user.Handler{
		Users:    userStore,
		Products: productStore,
		Secret:   cfg.JWTSecret,
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.Register(r, productHandler, userHandler,
		middleware.Authenticated(userStore, cfg.JWTSecret),
		middleware.LoginRateLimit(db.Redis))

	log.WithField("port", cfg.Port).Info("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
