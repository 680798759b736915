package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides on top of the current
// configuration. See the env tags on ServerConfig for the variable
// names.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// WithPort sets the HTTP listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the runtime environment name.
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		c.Environment = env
		return nil
	}
}

// WithDatabase selects the repository backend ("memory" or "postgres").
func WithDatabase(databaseType string) Option {
	return func(c *ServerConfig) error {
		c.DatabaseType = databaseType
		return nil
	}
}

// WithStorage selects the media storage backend ("memory" or "s3").
func WithStorage(backend string) Option {
	return func(c *ServerConfig) error {
		c.StorageBackend = backend
		return nil
	}
}

// WithJWTSecret sets the HMAC secret used to verify bearer tokens.
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}

// WithRedisEvents enables the redis event sink at the given address.
func WithRedisEvents(addr string) Option {
	return func(c *ServerConfig) error {
		c.Redis.Enabled = true
		c.Redis.Addr = addr
		return nil
	}
}
