package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	CORSAllowed    string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding    string `envconfig:"LOG_ENCODING" default:"json"`
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"estate:"`

	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"estate"`

	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTIssuer     string `envconfig:"JWT_ISSUER" default:"estate-be"`
	JWTTTLMinutes int    `envconfig:"JWT_TTL_MINUTES" default:"60"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	APIKey       string `envconfig:"API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	NominatimURL string `envconfig:"NOMINATIM_URL" default:"https://nominatim.openstreetmap.org"`
	GeoUserAgent string `envconfig:"GEO_USER_AGENT" default:"estate-be/1.0"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"listing-images"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	NATSURL string `envconfig:"NATS_URL"`

	CORSOrigins []string      `ignored:"true"`
	JWTTTL      time.Duration `ignored:"true"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.Port = fallback(cfg.Port, "8080")
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.MongoURI = strings.TrimSpace(cfg.MongoURI)
	cfg.StorageBackend = strings.ToLower(fallback(cfg.StorageBackend, BackendMemory))
	cfg.CORSOrigins = parseCSV(cfg.CORSAllowed)
	if cfg.JWTTTLMinutes > 0 {
		cfg.JWTTTL = time.Duration(cfg.JWTTTLMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORAGE_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// MediaEnabled reports whether image uploads have somewhere to go.
func (c Config) MediaEnabled() bool {
	return strings.TrimSpace(c.MinioEndpoint) != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
