package database

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"bazaar_back_end/internal/config"
)

// Databases bundles every external collaborator. It is built once at startup
// and handed to the router; there is no package-level state.
type Databases struct {
	Users    *gocql.Session
	Products *gocql.Session
	Redis    *redis.Client
	Elastic  *elasticsearch.Client
	MinIO    *minio.Client
}

// Connect brings up ScyllaDB (one session per keyspace), Redis, Elasticsearch
// and MinIO. Scylla and Redis are hard requirements; Elasticsearch is allowed
// to be down since search degrades to a store scan.
func Connect(cfg *config.Config) (*Databases, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := scyllaSession(cfg, cfg.ScyllaUsersKeyspace, cfg.ScyllaUsersRole, cfg.ScyllaUsersPassword)
	if err != nil {
		return nil, fmt.Errorf("users keyspace: %w", err)
	}
	products, err := scyllaSession(cfg, cfg.ScyllaProductsKeyspace, cfg.ScyllaProductsRole, cfg.ScyllaProductsPassword)
	if err != nil {
		return nil, fmt.Errorf("products keyspace: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info("connected to Redis")

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	if res, err := es.Info(); err != nil {
		log.WithError(err).Warn("elasticsearch unreachable, search will fall back to the store")
		es = nil
	} else {
		res.Body.Close()
		log.Info("connected to Elasticsearch")
	}

	mc, err := connectMinIO(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	log.Info("all databases connected")
	return &Databases{
		Users:    users,
		Products: products,
		Redis:    rdb,
		Elastic:  es,
		MinIO:    mc,
	}, nil
}

func scyllaSession(cfg *config.Config, keyspace, role, password string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.ScyllaHosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 20
	cluster.ReconnectInterval = time.Second
	if role != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{Username: role, Password: password}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	log.WithField("keyspace", keyspace).Info("ScyllaDB session ready")
	return session, nil
}

func connectMinIO(ctx context.Context, cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.MinioBucket).Info("bucket created")
	}
	log.WithField("endpoint", cfg.MinioEndpoint).Info("connected to MinIO")
	return client, nil
}

// Close tears the sessions down; used on shutdown.
func (d *Databases) Close() {
	if d.Users != nil {
		d.Users.Close()
	}
	if d.Products != nil {
		d.Products.Close()
	}
	if d.Redis != nil {
		d.Redis.Close()
	}
}
