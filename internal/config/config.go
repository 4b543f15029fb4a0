package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config carries every setting the server needs. It is built once in main and
// passed down explicitly; nothing else reads the environment.
type Config struct {
	Port string

	ScyllaHosts            []string
	ScyllaUsersKeyspace    string
	ScyllaUsersRole        string
	ScyllaUsersPassword    string
	ScyllaProductsKeyspace string
	ScyllaProductsRole     string
	ScyllaProductsPassword string

	RedisAddr     string
	RedisPassword string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	JWTSecret string
}

// Load reads .env when present and builds the Config from the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("no .env file found, using system environment")
	}

	cfg := &Config{
		Port: getenv("PORT", "8080"),

		ScyllaHosts:            strings.Split(getenv("SCYLLA_HOSTS", "127.0.0.1"), ","),
		ScyllaUsersKeyspace:    getenv("SCYLLA_KS_USERS_KEYSPACE", "shop_users"),
		ScyllaUsersRole:        os.Getenv("SCYLLA_KS_USERS_ROLE"),
		ScyllaUsersPassword:    os.Getenv("SCYLLA_KS_USERS_PASSWORD"),
		ScyllaProductsKeyspace: getenv("SCYLLA_KS_PRODUCTS_KEYSPACE", "shop_products"),
		ScyllaProductsRole:     os.Getenv("SCYLLA_KS_PRODUCTS_ROLE"),
		ScyllaProductsPassword: os.Getenv("SCYLLA_KS_PRODUCTS_PASSWORD"),

		RedisAddr:     getenv("REDIS_HOST", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ElasticURL:      getenv("ELASTIC_URL", "http://127.0.0.1:9200"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "products"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
