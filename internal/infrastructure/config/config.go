package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// StorageConfig selects the persistence backend for the durable stores.
// "mongo" uses MongoDB repositories; "file" uses the JSON key-value
// adapter under DataDir.
type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=mongo"`
	DataDir string `env:"DATA_DIR,        default=./data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=kitchen_system"`
}

type RedisConfig struct {
	// Addr left empty disables Redis; session state then persists to DataDir.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
