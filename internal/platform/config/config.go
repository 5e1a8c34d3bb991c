package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config captures everything the server needs from the environment.
// Empty DatabaseURL or RedisURL selects the in-memory implementation of the
// respective concern, which keeps local development dependency-free.
type Config struct {
	Addr        string `env:"CURIO_ADDR" env-default:":8080"`
	DatabaseURL string `env:"CURIO_DATABASE_URL"`
	RedisURL    string `env:"CURIO_REDIS_URL"`

	JWTSigningKey  string        `env:"CURIO_JWT_SIGNING_KEY" env-default:"dev-secret-change-in-production"`
	JWTIssuer      string        `env:"CURIO_JWT_ISSUER" env-default:"curio"`
	AccessTokenTTL time.Duration `env:"CURIO_ACCESS_TOKEN_TTL" env-default:"1h"`

	RequestTimeout  time.Duration `env:"CURIO_REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"CURIO_SHUTDOWN_TIMEOUT" env-default:"10s"`

	RedisPoolSize     int           `env:"CURIO_REDIS_POOL_SIZE" env-default:"10"`
	RedisDialTimeout  time.Duration `env:"CURIO_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	RedisReadTimeout  time.Duration `env:"CURIO_REDIS_READ_TIMEOUT" env-default:"3s"`
	RedisWriteTimeout time.Duration `env:"CURIO_REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// Load builds a Config from environment variables so main stays lean.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
