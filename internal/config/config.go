package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the lib/pq connection string.
func (d DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the postgres:// form used by the migration runner.
func (d DB) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

type Kafka struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Enabled reports whether domain events should be published.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Kafka                Kafka
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	PostsPerPage         int
	PageCacheTTL         time.Duration
	MigrationsPath       string
	LogLevel             string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "yatube")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET_NAME", "posts")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_REGION", "us-east-1")
	v.SetDefault("MINIO_URL_EXPIRY", "168h")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "yatube-events")
	v.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("ACCESS_TOKEN_DURATION", "2h")
	v.SetDefault("REFRESH_TOKEN_DURATION", "168h")
	v.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)

	v.SetDefault("POSTS_PER_PAGE", 10)
	v.SetDefault("PAGE_CACHE_TTL", "20s")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("LOG_LEVEL", "info")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	perPage := v.GetInt("POSTS_PER_PAGE")
	if perPage < 1 {
		perPage = 10
	}

	return &Config{
		ServerPort: v.GetInt("SERVER_PORT"),
		DB: DB{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		MinIO: MinIO{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			BucketName: v.GetString("MINIO_BUCKET_NAME"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			Region:     v.GetString("MINIO_REGION"),
			URLExpiry:  parseDuration(v.GetString("MINIO_URL_EXPIRY"), 7*24*time.Hour),
		},
		Kafka: Kafka{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			Topic:        v.GetString("KAFKA_TOPIC"),
			WriteTimeout: parseDuration(v.GetString("KAFKA_WRITE_TIMEOUT"), 10*time.Second),
		},
		JWTSecretKey:         v.GetString("JWT_SECRET_KEY"),
		AccessTokenDuration:  parseDuration(v.GetString("ACCESS_TOKEN_DURATION"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(v.GetString("REFRESH_TOKEN_DURATION"), 168*time.Hour),
		MaxUploadSize:        v.GetInt64("MAX_UPLOAD_SIZE"),
		PostsPerPage:         perPage,
		PageCacheTTL:         parseDuration(v.GetString("PAGE_CACHE_TTL"), 20*time.Second),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		LogLevel:             v.GetString("LOG_LEVEL"),
	}
}

// LoadConfig reads .env (if present), the environment and an optional
// config.yaml. It is called once at startup; the result is not mutated later.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // the file is optional

	return FromViper(v)
}
