package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv  string `mapstructure:"app_env"`
	AppPort string `mapstructure:"app_port"`
	BaseURL string `mapstructure:"base_url"`

	StoreDriver     string        `mapstructure:"store_driver"`
	MongoURL        string        `mapstructure:"mongodb_url"`
	MongoDatabase   string        `mapstructure:"mongodb_database"`
	DBURL           string        `mapstructure:"db_url"`
	DBTimeout       time.Duration `mapstructure:"db_timeout"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	JWTTTL          time.Duration `mapstructure:"jwt_ttl"`
	ResetTokenTTL   time.Duration `mapstructure:"reset_token_ttl"`
	InternalSecret  string        `mapstructure:"internal_secret_key"`
	SMTPHost        string        `mapstructure:"smtp_host"`
	SMTPPort        int           `mapstructure:"smtp_port"`
	Email           string        `mapstructure:"email"`
	EmailPassword   string        `mapstructure:"epass"`
	CloudName       string        `mapstructure:"cloudinary_cloud_name"`
	CloudAPIKey     string        `mapstructure:"cloudinary_api_key"`
	CloudAPISecret  string        `mapstructure:"cloudinary_api_secret"`
	KafkaBrokers    string        `mapstructure:"kafka_brokers"`
	KafkaOrderTopic string        `mapstructure:"kafka_order_topic"`
}

var defaults = map[string]any{
	"app_env":               "development",
	"app_port":              "8080",
	"base_url":              "http://localhost:3000",
	"store_driver":          DriverMongo,
	"mongodb_url":           "",
	"mongodb_database":      "stockstores",
	"db_url":                "",
	"db_timeout":            10 * time.Second,
	"jwt_secret":            "",
	"jwt_ttl":               120 * time.Hour,
	"reset_token_ttl":       10 * time.Minute,
	"internal_secret_key":   "",
	"smtp_host":             "smtp.gmail.com",
	"smtp_port":             587,
	"email":                 "",
	"epass":                 "",
	"cloudinary_cloud_name": "",
	"cloudinary_api_key":    "",
	"cloudinary_api_secret": "",
	"kafka_brokers":         "",
	"kafka_order_topic":     "stockstores.orders",
}

// LoadConfig reads .env (if any) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			return errors.New("MONGODB_URL is not set")
		}
	case DriverPostgres:
		if c.DBURL == "" {
			return errors.New("DB_URL is not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits BASE_URL into CORS origins.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.BaseURL)
}

// PrimaryURL is the first BASE_URL entry, used to build links in emails.
func (c *Config) PrimaryURL() string {
	if o := c.AllowedOrigins(); len(o) > 0 {
		return strings.TrimRight(o[0], "/")
	}
	return ""
}

func (c *Config) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
