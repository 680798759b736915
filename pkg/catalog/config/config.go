package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunehub/tunehub-server/pkg/catalog"
	redissink "github.com/tunehub/tunehub-server/pkg/catalog/events/redis"
	memoryrepo "github.com/tunehub/tunehub-server/pkg/catalog/repo/memory"
	postgresrepo "github.com/tunehub/tunehub-server/pkg/catalog/repo/postgres"
	"github.com/tunehub/tunehub-server/pkg/catalog/storage"
	memorystore "github.com/tunehub/tunehub-server/pkg/catalog/storage/memory"
	s3store "github.com/tunehub/tunehub-server/pkg/catalog/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		DatabaseType:   "memory",
		StorageBackend: "memory",
		JWTSecret:      "dev-secret",
		DB: DBConfig{
			Host: "localhost",
			Port: 5432,
			Name: "tunehub_db",
			User: "tunehub",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		S3: S3Config{
			Region:       "us-east-1",
			Bucket:       "tunehub-media",
			UsePathStyle: true,
		},
	}
}

// ServerConfig represents server configuration for the tunehub service.
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	DatabaseType   string `env:"DATABASE_TYPE" env-default:"memory"`   // "memory", "postgres"
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"` // "memory", "s3"
	JWTSecret      string `env:"JWT_SECRET" env-default:"dev-secret"`

	DB    DBConfig
	Redis RedisConfig
	S3    S3Config
}

// DBConfig holds postgres connection settings. Only read when
// DatabaseType is "postgres".
type DBConfig struct {
	Host     string `env:"TUNEHUB_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"TUNEHUB_PG_PORT" env-default:"5432"`
	Name     string `env:"TUNEHUB_PG_NAME" env-default:"tunehub_db"`
	User     string `env:"TUNEHUB_PG_USER" env-default:"tunehub"`
	Password string `env:"TUNEHUB_PG_PASSWORD" env-default:"pwd"`
}

// RedisConfig holds event-sink settings. When Enabled is false the
// service falls back to the noop sink.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// S3Config holds media storage settings. Only read when StorageBackend
// is "s3". The defaults target a local MinIO.
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:"tunehub-media"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
}

// DatabaseURL renders the postgres connection string from the
// individual DB settings.
func (c DBConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.StorageBackend != "memory" && c.StorageBackend != "s3" {
		return errors.New("storage_backend must be 'memory' or 's3'")
	}
	if c.DatabaseType == "postgres" && c.DB.Name == "" {
		return errors.New("database name is required when using postgres")
	}
	if c.StorageBackend == "s3" && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when using s3 storage")
	}
	return nil
}

// BuildService creates a catalog Service from the server configuration,
// wiring the repository and, when enabled, the redis event sink.
func (c *ServerConfig) BuildService(ctx context.Context) (catalog.Service, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	options := []catalog.Option{catalog.WithRepository(repo)}

	if c.Redis.Enabled {
		sink, err := redissink.NewFromAddr(ctx, c.Redis.Addr, c.Redis.Password, c.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect event sink: %w", err)
		}
		options = append(options, catalog.WithEventSink(sink))
	}

	return catalog.New(options...)
}

// BuildRepository creates a Repository based on the configuration.
func (c *ServerConfig) BuildRepository(ctx context.Context) (catalog.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memoryrepo.New(), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DB.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return postgresrepo.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// BuildFileStore creates the media FileStore based on the configuration.
func (c *ServerConfig) BuildFileStore() (storage.FileStore, error) {
	switch c.StorageBackend {
	case "memory":
		return memorystore.New(), nil
	case "s3":
		return s3store.New(s3store.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Endpoint:        c.S3.Endpoint,
			UsePathStyle:    c.S3.UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", c.StorageBackend)
	}
}
