package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	InviteExpiry     time.Duration

	BaseURL string

	SMTP    SMTPConfig
	Redis   RedisConfig
	MQ      MQConfig
	Storage StorageConfig

	SnapshotTTL     time.Duration
	ImportBatchSize int
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// RedisConfig is empty when no cache is configured.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type StorageConfig struct {
	Dir       string `yaml:"dir"`
	PublicURL string `yaml:"public_url"`
	MaxBytes  int64  `yaml:"max_bytes"`
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE. Environment
// variables override anything set here.
type fileConfig struct {
	Server struct {
		Port     string `yaml:"port"`
		Env      string `yaml:"env"`
		BaseURL  string `yaml:"base_url"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret        string `yaml:"secret"`
		AccessExpiry  string `yaml:"access_expiry"`
		RefreshExpiry string `yaml:"refresh_expiry"`
		InviteExpiry  string `yaml:"invite_expiry"`
	} `yaml:"jwt"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Redis   RedisConfig   `yaml:"redis"`
	MQ      MQConfig      `yaml:"mq"`
	Storage StorageConfig `yaml:"storage"`
	Import  struct {
		BatchSize int `yaml:"batch_size"`
	} `yaml:"import"`
	SnapshotTTL string `yaml:"snapshot_ttl"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := readFile(path, &file); err != nil {
			return nil, err
		}
	}

	secret := getEnv("JWT_SECRET", file.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("required setting not provided: JWT_SECRET")
	}

	return &Config{
		Port:        getEnv("PORT", or(file.Server.Port, "8080")),
		Env:         getEnv("ENV", or(file.Server.Env, "development")),
		DatabaseURL: getEnv("DATABASE_URL", file.Database.URL),
		LogLevel:    getEnv("LOG_LEVEL", or(file.Server.LogLevel, "info")),

		JWTSecret:        secret,
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", file.JWT.AccessExpiry, 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", file.JWT.RefreshExpiry, 168*time.Hour),
		InviteExpiry:     getDuration("INVITE_EXPIRY", file.JWT.InviteExpiry, 72*time.Hour),

		BaseURL: getEnv("BASE_URL", or(file.Server.BaseURL, "http://localhost:8080")),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", file.SMTP.Host),
			Port:     getEnv("SMTP_PORT", or(file.SMTP.Port, "587")),
			Username: getEnv("SMTP_USERNAME", file.SMTP.Username),
			Password: getEnv("SMTP_PASSWORD", file.SMTP.Password),
			From:     getEnv("SMTP_FROM", file.SMTP.From),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", file.Redis.Addr),
			Password: getEnv("REDIS_PASSWORD", file.Redis.Password),
			DB:       getInt("REDIS_DB", file.Redis.DB),
		},
		MQ: MQConfig{
			URL:      getEnv("MQ_URL", file.MQ.URL),
			Exchange: getEnv("MQ_EXCHANGE", or(file.MQ.Exchange, "sitetrack.events")),
		},
		Storage: StorageConfig{
			Dir:       getEnv("STORAGE_DIR", or(file.Storage.Dir, "./data/photos")),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", or(file.Storage.PublicURL, "/photos")),
			MaxBytes:  int64(getInt("PHOTO_MAX_BYTES", orInt(int(file.Storage.MaxBytes), 10<<20))),
		},

		SnapshotTTL:     getDuration("SNAPSHOT_TTL", file.SnapshotTTL, 30*time.Second),
		ImportBatchSize: getInt("IMPORT_BATCH_SIZE", orInt(file.Import.BatchSize, 20)),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func readFile(path string, into *fileConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(into); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key, fileValue string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fileValue))
	if err != nil {
		return fallback
	}
	return d
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
