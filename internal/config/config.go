package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// MaxIndexBatchSize - верхняя граница INDEX_MAX_BATCH_SIZE: Postgres принимает не более 65535
// параметров на запрос, а самая широкая строка пакета (поиск сущностей) занимает 8
const MaxIndexBatchSize = 65535 / 8

type Config struct {
	Server  ServerConfig
	IndexDB DatabaseConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Index   IndexConfig
	Log     LogConfig
	Worker  WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig - кэш ответов индекса; нулевой TTL отключает кэш
type CacheConfig struct {
	IndexCacheTTL time.Duration
}

type IndexConfig struct {
	MaxResults   int
	MaxBatchSize int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	BatchSize         int
	MaxRetries        int
	StreamReadTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("INDEX_DB_HOST", "localhost")
	v.SetDefault("INDEX_DB_PORT", 5432)
	v.SetDefault("INDEX_DB_USER", "postgres")
	v.SetDefault("INDEX_DB_NAME", "georef")
	v.SetDefault("INDEX_DB_SSLMODE", "disable")
	v.SetDefault("INDEX_DB_MAX_CONNS", 25)
	v.SetDefault("INDEX_DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("INDEX_DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("INDEX_DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("INDEX_CACHE_TTL", 0)
	v.SetDefault("INDEX_MAX_RESULTS", 10)
	v.SetDefault("INDEX_MAX_BATCH_SIZE", 1000)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "place-resolve-workers")
	v.SetDefault("WORKER_BATCH_SIZE", 100)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
}

// Load reads configuration from .env (optional) and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads configuration from the given env file and the environment.
// A missing file is not an error; defaults and environment variables apply.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		IndexDB: DatabaseConfig{
			Host:            v.GetString("INDEX_DB_HOST"),
			Port:            v.GetInt("INDEX_DB_PORT"),
			User:            v.GetString("INDEX_DB_USER"),
			Password:        v.GetString("INDEX_DB_PASSWORD"),
			DBName:          v.GetString("INDEX_DB_NAME"),
			SSLMode:         v.GetString("INDEX_DB_SSLMODE"),
			MaxConns:        v.GetInt("INDEX_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("INDEX_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("INDEX_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("INDEX_DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			IndexCacheTTL: time.Duration(v.GetInt("INDEX_CACHE_TTL")) * time.Second,
		},
		Index: IndexConfig{
			MaxResults:   v.GetInt("INDEX_MAX_RESULTS"),
			MaxBatchSize: v.GetInt("INDEX_MAX_BATCH_SIZE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Index.MaxResults <= 0 {
		return fmt.Errorf("INDEX_MAX_RESULTS must be positive, got %d", c.Index.MaxResults)
	}
	if c.Index.MaxBatchSize <= 0 || c.Index.MaxBatchSize > MaxIndexBatchSize {
		return fmt.Errorf("INDEX_MAX_BATCH_SIZE must be in [1, %d], got %d", MaxIndexBatchSize, c.Index.MaxBatchSize)
	}
	if c.Cache.IndexCacheTTL < 0 {
		return fmt.Errorf("INDEX_CACHE_TTL must not be negative")
	}
	if c.Worker.BatchSize <= 0 {
		return fmt.Errorf("WORKER_BATCH_SIZE must be positive, got %d", c.Worker.BatchSize)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN returns the libpq connection string of the database.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns host:port of the Redis server.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
