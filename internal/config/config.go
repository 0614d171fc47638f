package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Database backing the legacy sofa records. memory:// keeps them in process.
	DatabaseURL string `envconfig:"DATABASE_URL" default:"memory://"`

	// Redis cache for PIM responses. Empty disables caching.
	RedisURL string `envconfig:"REDIS_URL"`

	// Kafka catalog events. Empty brokers disables publishing.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"catalog-events"`
	KafkaGroupID string `envconfig:"KAFKA_GROUP_ID" default:"configurator-worker"`

	// API Configuration
	APIPort string `envconfig:"API_PORT" default:"8080"`
	APIHost string `envconfig:"API_HOST" default:"0.0.0.0"`

	// CORS
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	// PIM
	PIMBaseURL  string        `envconfig:"PIM_BASE_URL" default:"https://business.francecanape.com/api"`
	PIMAPIToken string        `envconfig:"PIM_API_TOKEN"`
	PIMTimeout  time.Duration `envconfig:"PIM_TIMEOUT" default:"30s"`
	PIMCacheTTL time.Duration `envconfig:"PIM_CACHE_TTL" default:"10m"`

	// Uploads
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// Static assets bundled with the catalog seed.
	AssetsDir       string `envconfig:"ASSETS_DIR" default:"attached_assets/generated_images"`
	PlaceholderFile string `envconfig:"PLACEHOLDER_FILE" default:"public/placeholder.jpg"`

	// Environment
	Env       string `envconfig:"ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogFile   string `envconfig:"LOG_FILE"`
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Brokers splits KafkaBrokers on commas, dropping empty entries.
func (c *Config) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

// Origins splits AllowedOrigins on commas, dropping empty entries.
func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
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
