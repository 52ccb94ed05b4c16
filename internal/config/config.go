package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CART_STORAGE_DRIVER の値
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	DatabaseURL      string // あれば POSTGRES_* より優先
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CatalogURL     string // 空ならDB直結のカタログを使う（APIサーバーのみ）
	CatalogTimeout time.Duration

	StorageDriver string        // memory/sqlite/postgres/redis
	StorageKey    string        // スナップショットのキー
	StoragePath   string        // sqlite のファイル
	SnapshotTTL   time.Duration // redis のみ。0なら期限なし

	AdminToken     string // 空なら /admin は閉じる
	TracingEnabled bool
}

// Loadは .env（あれば）と環境変数から読む
func Load() (Config, error) {
	// .env が無いのは正常
	_ = godotenv.Load()

	pgPort, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	catalogTimeout, err := envDuration("CATALOG_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	ttl, err := envDuration("CART_SNAPSHOT_TTL", 0)
	if err != nil {
		return Config{}, err
	}
	tracing, err := envBool("TRACING_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     envString("PORT", "8080"),
		GoEnv:    envString("GO_ENV", "dev"),
		LogLevel: envString("LOG_LEVEL", "info"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     envString("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  envString("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		CatalogURL:     strings.TrimRight(os.Getenv("CATALOG_URL"), "/"),
		CatalogTimeout: catalogTimeout,

		StorageDriver: strings.ToLower(envString("CART_STORAGE_DRIVER", StorageSQLite)),
		StorageKey:    envString("CART_STORAGE_KEY", "@storefront:cart"),
		StoragePath:   envString("CART_STORAGE_PATH", defaultStoragePath()),
		SnapshotTTL:   ttl,

		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		TracingEnabled: tracing,
	}

	//必須チェック
	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if !cfg.HasDatabase() {
			return Config{}, fmt.Errorf("DATABASE_URL or POSTGRES_USER/POSTGRES_DB is required for postgres storage")
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR is required for redis storage")
		}
	default:
		return Config{}, fmt.Errorf("CART_STORAGE_DRIVER must be one of memory, sqlite, postgres, redis: %q", cfg.StorageDriver)
	}
	if cfg.StorageKey == "" {
		return Config{}, fmt.Errorf("CART_STORAGE_KEY must not be empty")
	}

	return cfg, nil
}

// DB接続情報があるか
func (c Config) HasDatabase() bool {
	return c.DatabaseURL != "" || (c.PostgresUser != "" && c.PostgresDB != "")
}

func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "cart.db"
	}
	return filepath.Join(home, ".storefront", "cart.db")
}

func envString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration (e.g. 5s): %w", key, err)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be true/false: %w", key, err)
	}
	return b, nil
}
