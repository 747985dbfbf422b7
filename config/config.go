package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"production"`
	Port   string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	APIKey     string        `env:"COST_API_KEY,notEmpty"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	CatalogPath   string `env:"CATALOG_PATH" envDefault:"./data/catalog.yaml"`
	OrderIDPrefix string `env:"ORDER_ID_PREFIX" envDefault:"ORD"`
	StoreName     string `env:"STORE_NAME" envDefault:"Alpico Coffee"`

	BackupDir       string        `env:"BACKUP_DIR" envDefault:"./backup/uploads"`
	BackupRetention time.Duration `env:"BACKUP_RETENTION" envDefault:"96h"`
	BackupHour      int           `env:"BACKUP_HOUR" envDefault:"2"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// DSN returns DATABASE_URL when set, otherwise a DSN assembled from DB_*.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
